package observability

import (
	"testing"

	"github.com/explainwell/concept-evaluator/internal/config"
)

func TestSetupLogger_DevAndProd(t *testing.T) {
	lg := SetupLogger(config.Config{AppEnv: "dev", ServiceName: "concept-evaluator"})
	if lg == nil {
		t.Fatalf("nil logger")
	}
	lg2 := SetupLogger(config.Config{AppEnv: "prod", ServiceName: "concept-evaluator"})
	if lg2 == nil {
		t.Fatalf("nil logger prod")
	}
}
