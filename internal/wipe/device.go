package wipe

import (
	"fmt"
	"io"
	"os"
)

// WipeDevice overwrites the addressable range of a raw block device
// with the GOST R50739-95 device sequence: a zeros pass followed by a
// random pass. The device node itself is never unlinked. The size is
// taken from the device's seek end, so the same code path works
// against a regular file in tests.
func (e *Engine) WipeDevice(path string) error {
	std, err := Lookup("GOST R50739-95")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return fmt.Errorf("size device %s: %w", path, err)
	}

	s := &Session{file: f, path: path, size: size}
	e.emit(EventInit, path)
	e.logger.Debug("wiping device", "path", path, "size", size)

	for _, op := range std.DeviceOps {
		if _, err := e.apply(s, op); err != nil {
			_ = s.Close()
			return fmt.Errorf("%s on device %s: %w", op, path, err)
		}
	}
	if err := s.Close(); err != nil {
		return err
	}
	e.emit(EventDone, path)
	return nil
}
