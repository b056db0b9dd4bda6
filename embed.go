package typo

import "embed"

// EmbeddedAssets contains the default stylesheet served when the user's
// static dir does not provide one.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
