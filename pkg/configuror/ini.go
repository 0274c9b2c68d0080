package configuror

import (
	"github.com/thoreinstein/configuror/internal/iniconv"
)

// LoadFromINI merges the sections of an INI file. Each section becomes one
// key whose value maps option names to strings; DEFAULT is always present.
func (c *Config) LoadFromINI(path string, ignoreAbsence bool, interp Interpolation) (bool, error) {
	mode, err := iniconv.ParseInterpolation(string(interp))
	if err != nil {
		return false, err
	}
	if ok, err := pathExists(path, ignoreAbsence); !ok {
		return false, err
	}
	return c.loadINI([]string{path}, mode)
}

// LoadFromINIFiles reads several INI files as one document, later files
// overriding earlier ones. With ignoreAbsence and no existing file the
// Config gains an empty DEFAULT section.
func (c *Config) LoadFromINIFiles(paths []string, ignoreAbsence bool, interp Interpolation) (bool, error) {
	mode, err := iniconv.ParseInterpolation(string(interp))
	if err != nil {
		return false, err
	}
	files, err := FilterPaths(paths, ignoreAbsence)
	if err != nil {
		return false, err
	}
	return c.loadINI(files, mode)
}

func (c *Config) loadINI(files []string, mode Interpolation) (bool, error) {
	doc, err := iniconv.Load(files)
	if err != nil {
		return false, err
	}
	sections, err := doc.Resolve(mode)
	if err != nil {
		return false, err
	}

	for _, s := range sections {
		c.values.Set(s.Name, s.Values)
	}
	for _, path := range files {
		c.logLoaded(INI, path, len(sections))
	}
	return true, nil
}
