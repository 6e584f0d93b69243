// Package prompts builds the system prompt for each generation kind.
package prompts

import (
	"fmt"
	"strings"

	"github.com/irondev/iron-dev-agent/internal/artifacts"
	"github.com/irondev/iron-dev-agent/internal/constants"
)

// Mode records which template of a pair was used.
type Mode string

const (
	ModeFresh       Mode = "fresh"
	ModeIncremental Mode = "incremental"
)

const languagePlaceholder = "{{language}}"

type pair struct {
	fresh       string
	incremental string
}

var table = map[artifacts.Kind]pair{
	artifacts.KindPRD:        {fresh: prdFresh, incremental: prdIncremental},
	artifacts.KindUI:         {fresh: uiFresh, incremental: uiIncremental},
	artifacts.KindCode:       {fresh: codeFresh, incremental: codeIncremental},
	artifacts.KindTest:       {fresh: testFresh, incremental: testIncremental},
	artifacts.KindDeployment: {fresh: deploymentFresh, incremental: deploymentIncremental},
}

// Build returns the system prompt for kind. When existing is non-empty the
// incremental template is used and existing is appended verbatim.
func Build(kind artifacts.Kind, existing, language string) (string, Mode, error) {
	p, ok := table[kind]
	if !ok {
		return "", "", fmt.Errorf("no prompt template for %q", kind)
	}

	if language == "" {
		language = constants.DefaultLanguage
	}

	if strings.TrimSpace(existing) == "" {
		return render(p.fresh, language), ModeFresh, nil
	}
	return render(p.incremental, language) + existing, ModeIncremental, nil
}

func render(tpl, language string) string {
	return strings.ReplaceAll(tpl, languagePlaceholder, language)
}
