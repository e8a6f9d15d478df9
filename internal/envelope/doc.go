// Package envelope seals and opens story envelopes.
//
// An envelope is the base64 (standard alphabet, padded) encoding of
//
//	iv[12] || auth_tag[16] || ciphertext[N]
//
// where ciphertext is the AES-256-GCM encryption of UTF-8 text. The tag is
// stored before the ciphertext on the wire, while crypto/cipher expects it
// appended after; Decrypt and Seal perform that reorder.
//
// Decryptor and Sealer hold only an immutable cipher.AEAD and are safe for
// concurrent use. Neither logs nor panics on bad input: every failure is
// returned as an error wrapping one of the envelope sentinels in
// internal/errors.
package envelope
