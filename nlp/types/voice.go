package types

import "strings"

type Voice int

const (
	NotVerb Voice = iota
	Active
	Passive
	Copulative
	Infinitive
	Gerund
)

// VoiceWindow bounds the left context scanned for auxiliaries
const VoiceWindow = 4

var voiceNames = [...]string{"notVerb", "active", "passive", "copulative", "infinitive", "gerund"}

func (v Voice) String() string {
	if int(v) < 0 || int(v) >= len(voiceNames) {
		return "unknown"
	}
	return voiceNames[v]
}

type auxiliary int

const (
	noAux auxiliary = iota
	beAux
	getAux
	haveAux
	modalAux
	toAux
)

var (
	beForms   = map[string]bool{"be": true, "is": true, "are": true, "was": true, "were": true, "been": true, "being": true, "am": true, "'s": true, "'re": true, "'m": true}
	getForms  = map[string]bool{"get": true, "gets": true, "got": true, "gotten": true, "getting": true}
	haveForms = map[string]bool{"have": true, "has": true, "had": true, "having": true, "'ve": true, "'d": true}
)

func isVerb(t Token) bool {
	return strings.HasPrefix(t.POS, "VB")
}

func auxiliaryOf(t Token) auxiliary {
	form := strings.ToLower(t.Form)
	switch {
	case t.POS == "TO" || form == "to":
		return toAux
	case t.POS == "MD":
		return modalAux
	case t.Lemma == "be" || beForms[form]:
		return beAux
	case t.Lemma == "get" || getForms[form]:
		return getAux
	case t.Lemma == "have" || haveForms[form]:
		return haveAux
	}
	return noAux
}

// VoiceOf classifies a verb by the nearest auxiliary in its left context.
// The scan covers at most VoiceWindow tokens and stops at a coordinating
// conjunction.
func (d *DependencyTree) VoiceOf(t Token) Voice {
	if !d.contains(t) || !isVerb(t) {
		return NotVerb
	}
	if auxiliaryOf(t) == beAux && d.isMainVerb(t) {
		return Copulative
	}
	nearest := noAux
	for i := t.Index - 1; i >= 0 && i >= t.Index-VoiceWindow; i-- {
		left := d.tokens[i]
		if left.POS == "CC" {
			break
		}
		if aux := auxiliaryOf(left); aux != noAux {
			nearest = aux
			break
		}
	}
	switch t.POS {
	case "VBN":
		if nearest == haveAux {
			return Active
		}
		return Passive
	case "VBG":
		if nearest == beAux {
			return Active
		}
		return Gerund
	case "VB":
		if nearest == toAux {
			return Infinitive
		}
		return Active
	}
	return Active
}

// isMainVerb reports whether no verb depends on t, i.e. t is not an
// auxiliary of one of its children.
func (d *DependencyTree) isMainVerb(t Token) bool {
	for _, child := range d.ChildrenOf(t) {
		if isVerb(child) {
			return false
		}
	}
	return true
}
