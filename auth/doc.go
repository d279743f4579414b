// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential and log-field hashing.

# Passwords

Passwords are stored as salted bcrypt hashes:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

bcrypt ignores input past 72 bytes, so HashPassword refuses longer passwords
with ErrPasswordTooLong instead of silently truncating.

# IP Hashing

For log lines that must not carry raw client addresses:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
