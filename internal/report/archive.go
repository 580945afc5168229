package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const archiveExt = ".zst"

// ArchiveOld compresses a network's previous report files in place,
// renaming each `<network>-report.<ext>` to
// `<network>-report-<modtime>.<ext>.zst`. Already-archived files are left
// alone, so the results directory stays bounded to one uncompressed report
// set per network plus its history.
func ArchiveOld(dir, network string) error {
	prefix := network + "-report."

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || strings.HasSuffix(name, archiveExt) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		src := filepath.Join(dir, name)
		stamp := info.ModTime().UTC().Format("20060102T150405")
		ext := strings.TrimPrefix(name, network+"-report")
		dst := filepath.Join(dir, fmt.Sprintf("%s-report-%s%s%s", network, stamp, ext, archiveExt))

		if err := compressFile(src, dst); err != nil {
			return fmt.Errorf("archiving %s: %w", name, err)
		}
		if err := os.Remove(src); err != nil {
			return err
		}
	}
	return nil
}

func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close() //nolint:errcheck

	enc, err := zstd.NewWriter(out)
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, in); err != nil {
		enc.Close() //nolint:errcheck
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return out.Close()
}

// ReadArchived decompresses one archived report file.
func ReadArchived(path string) ([]byte, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close() //nolint:errcheck

	dec, err := zstd.NewReader(in)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return io.ReadAll(dec)
}
