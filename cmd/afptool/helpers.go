package main

import (
	"fmt"
	"os"
	"path/filepath"

	"afptool/internal/afp"
	"afptool/internal/pipeline"
)

// containerOpeners lists the built-in container parser hooks, tried in
// order. The indexed-archive family ships with the external format parser
// and registers itself through pipeline.Loader when linked in.
func containerOpeners() []pipeline.Opener {
	return []pipeline.Opener{
		func(source string, data []byte) (afp.Container, bool, error) {
			if !afp.IsZip(data) {
				return nil, false, nil
			}
			container, err := afp.ReadZipContainer(filepath.Base(source), data)
			return container, true, err
		},
	}
}

// loadContainers resolves each argument to a parsed container: directories
// are walked as flat archives, files go through the loader's parser hooks.
// Argument order is preserved so later containers can patch earlier ones.
func loadContainers(loader *pipeline.Loader, args []string) ([]afp.Container, error) {
	containers := make([]afp.Container, 0, len(args))
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat container %s: %w", arg, err)
		}
		if info.IsDir() {
			container, err := afp.ReadDirContainer(arg)
			if err != nil {
				return nil, err
			}
			containers = append(containers, container)
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("read container %s: %w", arg, err)
		}
		containers = append(containers, loader.Open(arg, data))
	}
	return containers, nil
}
