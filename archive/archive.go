// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package archive bundles the files of a run into one zip.
package archive

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// WriteZip writes the named files of fsys into a zip archive to w.
// Zip and xlsx files are stored without compression.
func WriteZip(w io.Writer, fsys fs.FS, names ...string) error {
	zw := zip.NewWriter(w)
	for _, name := range names {
		if err := addFile(zw, fsys, name); err != nil {
			zw.Close()
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, fsys fs.FS, name string) error {
	fh, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer fh.Close()
	fi, err := fh.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(fi)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate
	if isCompressed(name) {
		hdr.Method = zip.Store
	}
	if hdr.Modified.IsZero() {
		hdr.Modified = time.Now()
	}
	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, fh)
	return err
}

func isCompressed(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xlsx", ".zip":
		return true
	}
	return false
}
