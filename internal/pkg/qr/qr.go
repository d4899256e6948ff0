// Package qr renders a ticket's canonical payload as a QR code image.
// Encoding is pure: the same payload bytes and options always produce the
// same PNG, so the image is safe to recompute at any time.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize matches the 256px images the web client renders.
const DefaultSize = 256

type Options struct {
	Size          int
	RecoveryLevel qrcode.RecoveryLevel
}

func DefaultOptions() Options {
	return Options{
		Size:          DefaultSize,
		RecoveryLevel: qrcode.Medium,
	}
}

// Encode returns the payload as PNG bytes.
func Encode(payload []byte, opts Options) ([]byte, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}

	png, err := qrcode.Encode(string(payload), opts.RecoveryLevel, opts.Size)
	if err != nil {
		return nil, fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return png, nil
}

// EncodeBase64 returns the PNG as a base64 string, the storage form used on
// ticket records.
func EncodeBase64(payload []byte, opts Options) (string, error) {
	png, err := Encode(payload, opts)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
