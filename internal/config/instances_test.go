package config

import (
	"os"
	"testing"
	"time"
)

func TestRegisterAndListInstances(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())

	inst := Instance{
		Type:      InstanceServe,
		PID:       os.Getpid(),
		Port:      DefaultPort,
		Host:      "localhost",
		StartedAt: time.Now(),
	}
	if err := RegisterInstance(inst); err != nil {
		t.Fatalf("RegisterInstance() error = %v", err)
	}

	instances, err := ListInstances()
	if err != nil {
		t.Fatalf("ListInstances() error = %v", err)
	}
	if len(instances) != 1 || instances[0].Type != InstanceServe || instances[0].Port != DefaultPort {
		t.Fatalf("ListInstances() = %+v", instances)
	}
	if got := FindInstanceByPort(DefaultPort); got == nil || got.PID != os.Getpid() {
		t.Errorf("FindInstanceByPort() = %+v", got)
	}
}

func TestUnregisterInstance(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())

	if err := RegisterInstance(Instance{Type: InstanceServeMCP, PID: os.Getpid(), StartedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := UnregisterInstance(os.Getpid()); err != nil {
		t.Fatalf("UnregisterInstance() error = %v", err)
	}
	instances, err := ListInstances()
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 0 {
		t.Errorf("ListInstances() after unregister = %+v", instances)
	}
}

func TestListInstances_DropsStale(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())

	if err := RegisterInstance(Instance{Type: InstanceServe, PID: -1, StartedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	instances, err := ListInstances()
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 0 {
		t.Errorf("stale instance kept: %+v", instances)
	}
}

func TestRegisterInstance_ReplacesSamePID(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())

	pid := os.Getpid()
	if err := RegisterInstance(Instance{Type: InstanceServe, PID: pid, Port: 9001}); err != nil {
		t.Fatal(err)
	}
	if err := RegisterInstance(Instance{Type: InstanceServe, PID: pid, Port: 9002, Auth: true}); err != nil {
		t.Fatal(err)
	}
	instances, err := ListInstances()
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 1 || instances[0].Port != 9002 || !instances[0].Auth {
		t.Errorf("ListInstances() = %+v", instances)
	}
}

func TestInstanceURL(t *testing.T) {
	tests := []struct {
		inst Instance
		want string
	}{
		{Instance{Port: 8790, Host: "127.0.0.1"}, "http://127.0.0.1:8790"},
		{Instance{Port: 8791}, "http://localhost:8791"},
		{Instance{Host: "::1", Port: 80}, "http://[::1]:80"},
		{Instance{Type: InstanceServeMCP}, "stdio"},
	}
	for _, tt := range tests {
		if got := tt.inst.URL(); got != tt.want {
			t.Errorf("%+v.URL() = %q, want %q", tt.inst, got, tt.want)
		}
	}
}
