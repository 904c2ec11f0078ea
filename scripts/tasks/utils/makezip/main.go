// Reelparse
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Reelparse.
//
// Reelparse is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Reelparse is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Reelparse.  If not, see <http://www.gnu.org/licenses/>.

// Command makezip packages a reelparse build into a release zip holding
// the binary, the license, a short readme and an example config.
package main

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/ZaparooProject/reelparse/pkg/rules"
	"github.com/pelletier/go-toml/v2"
)

const (
	readmeName        = "README.txt"
	licenseName       = "LICENSE.txt"
	exampleConfigName = "config.example.toml"
)

const readmeTemplate = `reelparse %s

Parse media file names into title, year, episode, quality and more.

  reelparse "The.Matrix.1999.1080p.BluRay.x264-SPARKS.mkv"
  reelparse -format json -lookup "Dune.2021.2160p.WEB-DL.mkv"
  reelparse -rules -category "video codec"
  reelparse -serve

The config file lives in the user config directory under reelparse/%s.
%s shows every setting with an example custom rule.
`

// exampleConfig is the default config plus one custom rule, so users can
// see the layout of every section.
func exampleConfig() ([]byte, error) {
	vals := config.BaseDefaults
	vals.Rules.Custom = []rules.Definition{{
		ID:          "festival_cut",
		Name:        "Festival cut",
		Description: "release cut shown at film festivals",
		Pattern:     `\bFESTIVAL[\.\s]CUT\b`,
		Field:       rules.FieldTags,
		Value:       "Festival Cut",
		Examples:    []string{"Movie.2020.FESTIVAL.CUT.1080p.mkv"},
	}}
	data, err := toml.Marshal(&vals)
	if err != nil {
		return nil, fmt.Errorf("error encoding example config: %w", err)
	}
	return data, nil
}

func writeGenerated(buildDir string) error {
	readme := fmt.Sprintf(readmeTemplate, config.AppVersion, config.CfgFile, exampleConfigName)
	if err := os.WriteFile(filepath.Join(buildDir, readmeName), []byte(readme), 0o600); err != nil {
		return fmt.Errorf("error writing readme: %w", err)
	}
	cfg, err := exampleConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(buildDir, exampleConfigName), cfg, 0o600); err != nil {
		return fmt.Errorf("error writing example config: %w", err)
	}
	return nil
}

func main() {
	if len(os.Args) < 4 {
		_, _ = fmt.Println("Usage: go run ./scripts/tasks/utils/makezip <build_dir> <app_bin> <zip_name>")
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2], os.Args[3], "LICENSE"); err != nil {
		_, _ = fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(buildDir, appBin, zipName, licenseSrc string) error {
	if _, err := os.Stat(buildDir); os.IsNotExist(err) {
		return fmt.Errorf("the specified directory '%s' does not exist", buildDir)
	}

	appPath := filepath.Join(buildDir, appBin)
	if _, err := os.Stat(appPath); os.IsNotExist(err) {
		return fmt.Errorf("the specified binary file '%s' does not exist", appPath)
	}

	files := []string{appPath}

	licensePath := filepath.Join(buildDir, licenseName)
	if _, err := os.Stat(licensePath); os.IsNotExist(err) {
		err = copyFile(licenseSrc, licensePath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			_, _ = fmt.Printf("No %s found, packaging without a license file\n", licenseSrc)
		case err != nil:
			return fmt.Errorf("error copying license: %w", err)
		default:
			files = append(files, licensePath)
		}
	} else {
		files = append(files, licensePath)
	}

	if err := writeGenerated(buildDir); err != nil {
		return err
	}
	files = append(files,
		filepath.Join(buildDir, readmeName),
		filepath.Join(buildDir, exampleConfigName),
	)

	zipPath := filepath.Join(buildDir, zipName)
	_ = os.Remove(zipPath)
	return createZipFile(zipPath, files)
}

func createZipFile(zipPath string, files []string) (err error) {
	zipFile, err := os.Create(zipPath) //nolint:gosec // build output path
	if err != nil {
		return fmt.Errorf("error creating zip file: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("error closing zip file: %w", closeErr)
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	for _, path := range files {
		if err := addFileToZip(zipWriter, path, filepath.Base(path)); err != nil {
			_ = zipWriter.Close()
			return fmt.Errorf("error adding %s to zip: %w", filepath.Base(path), err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("error finishing zip: %w", err)
	}
	return nil
}

func addFileToZip(zipWriter *zip.Writer, filePath, arcname string) error {
	file, err := os.Open(filePath) //nolint:gosec // build input path
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = arcname
	header.Method = zip.Deflate

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, file)
	return err
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src) //nolint:gosec // build input path
	if err != nil {
		return err
	}
	return os.WriteFile(dst, input, 0o600)
}
