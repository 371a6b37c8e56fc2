package util

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// Read returns the whole contents of fileName
func Read(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(bufio.NewReader(f))
}

// Write creates fileName, and any missing parent directories, holding buf
func Write(buf []byte, fileName string) error {
	if dir := filepath.Dir(fileName); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	n := 0
	for n < len(buf) {
		m, err := f.Write(buf[n:])
		if err != nil {
			f.Close()
			return err
		}
		n += m
	}
	return f.Close()
}
