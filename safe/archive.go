package safe

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/util"
)

// UnzipAll extracts every Sentinel-2 archive in the workspace into a SAFE
// tree and deletes the archive afterwards. Archives whose embedded UTM zone
// is not the supported one are deleted without extraction.
func UnzipAll(ctx util.LogContext, directory string) error {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".zip") {
			continue
		}

		id, err := model.ParseSafeName(name)
		if err != nil {
			return err
		}
		if id.UTMZone() != model.SupportedUTMZone {
			util.LogAlert(ctx, fmt.Sprintf("CRS not supported for `%s`! Only EPSG:326%s supported", name, model.SupportedUTMZone))
			if err = util.Delete(filepath.Join(directory, name)); err != nil {
				return err
			}
			continue
		}

		if err = unzip(filepath.Join(directory, name), directory); err != nil {
			return err
		}
		if err = util.Delete(filepath.Join(directory, name)); err != nil {
			return err
		}
	}

	return nil
}

// unzip extracts one archive into the given directory
func unzip(archivePath, directory string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	for _, file := range reader.File {
		target, err := sanitizedPath(directory, file.Name)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err = os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err = os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err = extractFile(file, target); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(file *zip.File, target string) error {
	source, err := file.Open()
	if err != nil {
		return err
	}
	defer source.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, source)
	return err
}

// sanitizedPath rejects entries that would escape the extraction directory
func sanitizedPath(directory, name string) (string, error) {
	target := filepath.Join(directory, name)
	if !strings.HasPrefix(target, filepath.Clean(directory)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal archive entry path: %s", name)
	}
	return target, nil
}
