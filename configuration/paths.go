// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/waykichain/wiccd/fault"
)

// EnsureAbsolute - relative paths are taken from directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureAbsoluteAll - rewrite each path in place, blank optional
// paths stay blank
func EnsureAbsoluteAll(directory string, required []*string, optional []*string) {
	for _, p := range required {
		*p = EnsureAbsolute(directory, *p)
	}
	for _, p := range optional {
		if "" != *p {
			*p = EnsureAbsolute(directory, *p)
		}
	}
}

// CheckDirectory - path exists and is a directory
func CheckDirectory(path string) error {
	info, err := os.Stat(path)
	if nil != err {
		return err
	}
	if !info.IsDir() {
		return fault.ErrNotADirectory
	}
	return nil
}

// FileExists - anything exists at name
func FileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
