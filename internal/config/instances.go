package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"
)

// InstanceType identifies the kind of long-running palettepro process.
type InstanceType string

const (
	InstanceServe    InstanceType = "serve"
	InstanceServeMCP InstanceType = "serve-mcp"
)

// Instance is one entry in ~/.palettepro/instances.json.
type Instance struct {
	Type      InstanceType `json:"type"`
	PID       int          `json:"pid"`
	Port      int          `json:"port,omitempty"`
	Host      string       `json:"host,omitempty"`
	Auth      bool         `json:"auth,omitempty"`
	LogPath   string       `json:"log_path,omitempty"`
	StartedAt time.Time    `json:"started_at"`
}

// URL returns the base URL of an HTTP instance, or "stdio".
func (i Instance) URL() string {
	if i.Port == 0 {
		return "stdio"
	}
	host := i.Host
	if host == "" {
		host = DefaultHost
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(i.Port))
}

func instancesFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "instances.json"), nil
}

// editInstances rewrites the instance file with fn applied to its live entries.
func editInstances(fn func([]Instance) []Instance) error {
	path, err := instancesFile()
	if err != nil {
		return err
	}
	all, err := loadInstances(path)
	if err != nil {
		return err
	}
	out := fn(liveOnly(all))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RegisterInstance records inst, replacing any entry with the same PID.
func RegisterInstance(inst Instance) error {
	return editInstances(func(list []Instance) []Instance {
		list = slices.DeleteFunc(list, func(o Instance) bool { return o.PID == inst.PID })
		return append(list, inst)
	})
}

// UnregisterInstance drops the entry for pid.
func UnregisterInstance(pid int) error {
	return editInstances(func(list []Instance) []Instance {
		return slices.DeleteFunc(list, func(o Instance) bool { return o.PID == pid })
	})
}

// ListInstances returns the entries whose process is still running.
// Dead entries are pruned from the file as a side effect.
func ListInstances() ([]Instance, error) {
	path, err := instancesFile()
	if err != nil {
		return nil, err
	}
	all, err := loadInstances(path)
	if err != nil {
		return nil, err
	}
	live := liveOnly(all)
	if len(live) != len(all) {
		_ = editInstances(func(l []Instance) []Instance { return l })
	}
	return live, nil
}

// FindInstanceByPort returns the live instance bound to port, or nil.
func FindInstanceByPort(port int) *Instance {
	list, err := ListInstances()
	if err != nil {
		return nil
	}
	if i := slices.IndexFunc(list, func(o Instance) bool { return o.Port == port }); i >= 0 {
		return &list[i]
	}
	return nil
}

func loadInstances(path string) ([]Instance, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []Instance
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return list, nil
}

func liveOnly(list []Instance) []Instance {
	return slices.DeleteFunc(slices.Clone(list), func(o Instance) bool { return !processRunning(o.PID) })
}
