package failures

import (
	"errors"
	"fmt"
	"testing"

	"github.com/belalnote2/InsightAssistant/internal/domain/ai"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want Cause
	}{
		{ai.ErrBackendUnreachable, CauseBackendUnreachable},
		{fmt.Errorf("%w: status 500", ai.ErrBackendUnreachable), CauseBackendUnreachable},
		{ai.ErrMissingField, CauseMissingField},
		{fmt.Errorf("%w: bad json", ai.ErrMalformedPayload), CauseMalformedPayload},
		{errors.New("something else"), CauseBackendUnreachable},
	}
	for _, c := range cases {
		if got := Classify(c.err); got != c.want {
			t.Errorf("Classify(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}
