package artifacts

import (
	"errors"
	"fmt"

	"github.com/irondev/iron-dev-agent/internal/models"
)

// Kind is what the generator is asked to produce.
type Kind string

const (
	KindPRD        Kind = "prd"
	KindUI         Kind = "ui"
	KindCode       Kind = "code"
	KindTest       Kind = "test"
	KindDeployment Kind = "deployment"
)

var ErrUnknownKind = errors.New("unknown generation type")

// Generation binds a Kind to the slot its output is stored in.
type Generation struct {
	Kind Kind
	Slot Slot
	// UsesLanguage is set for kinds whose prompt names a programming language.
	UsesLanguage bool
}

func (g Generation) Stage() models.Stage {
	return g.Slot.Stage
}

var kindOrder = []Kind{KindPRD, KindUI, KindCode, KindTest, KindDeployment}

var kindSlots = map[Kind]Key{
	KindPRD:        {Stage: models.StageRequirements, Type: TypePRD},
	KindUI:         {Stage: models.StageDesign, Type: TypeUI},
	KindCode:       {Stage: models.StageDevelopment, Type: TypeFrontend},
	KindTest:       {Stage: models.StageTesting, Type: TypeUnitTests},
	KindDeployment: {Stage: models.StageDeployment, Type: TypeDocker},
}

var kindAliases = map[string]Kind{
	"tests":     KindTest,
	"unitTest":  KindTest,
	"unitTests": KindTest,
	"deploy":    KindDeployment,
}

// Kinds returns every generation kind.
func Kinds() []Kind {
	return append([]Kind(nil), kindOrder...)
}

// ParseKind resolves a request "type" value to its Generation.
func ParseKind(s string) (Generation, error) {
	kind := Kind(s)
	if alias, ok := kindAliases[s]; ok {
		kind = alias
	}

	key, ok := kindSlots[kind]
	if !ok {
		return Generation{}, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}

	return Generation{
		Kind:         kind,
		Slot:         slots[key],
		UsesLanguage: kind == KindCode || kind == KindTest,
	}, nil
}
