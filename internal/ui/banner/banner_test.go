package banner

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	if got := Render(40); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner should be compact, got %q", got)
	}
	if got := Render(120); !strings.Contains(got, "██████╗") {
		t.Error("wide banner should use the art")
	}
}
