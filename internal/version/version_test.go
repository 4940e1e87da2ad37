package version

import (
	"strings"
	"testing"
)

func TestGet_Stamped(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "v1.2.0"
	if got := Get(); got != "v1.2.0" {
		t.Errorf("Get() = %q", got)
	}
	if got := GetInfo("palettepro"); got.Name != "palettepro" || got.Version != "v1.2.0" {
		t.Errorf("GetInfo() = %+v", got)
	}
	if got := String("palettepro"); !strings.HasPrefix(got, "palettepro version v1.2.0") {
		t.Errorf("String() = %q", got)
	}
}

func TestShortRev(t *testing.T) {
	if got := shortRev("1a2b3c4d5e6f"); got != "1a2b3c4" {
		t.Errorf("shortRev() = %q", got)
	}
	if got := shortRev("abc"); got != "abc" {
		t.Errorf("shortRev(short) = %q", got)
	}
}
