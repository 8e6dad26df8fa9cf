package quiz

// RiskLevel classifies a total score. The string values are the wire/storage
// form used in records and exports.
type RiskLevel string

const (
	RiskBaixa     RiskLevel = "BAIXA"
	RiskModerada  RiskLevel = "MODERADA"
	RiskAlta      RiskLevel = "ALTA"
	RiskMuitoAlta RiskLevel = "MUITO_ALTA"
)

// MaxTotal is the highest reachable score: every question at its top value.
const MaxTotal = 80

// LevelForTotal maps a total score to its risk level. Bands are contiguous
// and non-overlapping: [0,20] [21,40] [41,60] [61,80].
func LevelForTotal(total int) RiskLevel {
	switch {
	case total >= 61:
		return RiskMuitoAlta
	case total >= 41:
		return RiskAlta
	case total >= 21:
		return RiskModerada
	default:
		return RiskBaixa
	}
}

// LevelName returns the user-facing name of a level.
func LevelName(level RiskLevel) string {
	switch level {
	case RiskModerada:
		return "Dependência Moderada"
	case RiskAlta:
		return "Dependência Alta"
	case RiskMuitoAlta:
		return "Dependência Muito Alta"
	default:
		return "Dependência Baixa"
	}
}

var baseTips = []string{
	"Crie zonas livres de tecnologia (mesa das refeições, quarto).",
	"Estabeleça horários claros de uso e desligamento.",
	"Ofereça alternativas divertidas offline todos os dias.",
	"Dê o exemplo: revise seu próprio uso de telas.",
}

var levelTips = map[RiskLevel][]string{
	RiskBaixa: {
		"Ótimo! Mantenha a rotina equilibrada com revisões semanais.",
	},
	RiskModerada: {
		"Atenção: já há sinais de excesso. Comece com regras consistentes e combinadas em família.",
	},
	RiskAlta: {
		"Prioridade: reduza estímulos noturnos e imponha um limite diário firme.",
		"Implemente um detox de 48–72h sem jogos/redes para reset de hábitos.",
	},
	RiskMuitoAlta: {
		"Situação séria, mas reversível: inicie um protocolo de detox guiado.",
		"Remova dispositivos do quarto e desligue 1–2h antes de dormir.",
		"Acompanhe emoções com alternativas (respiração, leitura, passeio).",
	},
}

// TipsFor returns the recommendation list for a level: the level-specific
// lines followed by the shared base list. The result is a fresh slice.
func TipsFor(level RiskLevel) []string {
	head := levelTips[level]
	out := make([]string, 0, len(head)+len(baseTips))
	out = append(out, head...)
	out = append(out, baseTips...)
	return out
}

// ComputeScore sums the recorded value of every catalog question, treating
// absent answers as 0, and maps the total to a level with its tips. Partial
// answer maps therefore yield a provisional score; completeness is enforced
// by Finalize, not here.
func ComputeScore(answers AnswerMap) ScoreResult {
	total := 0
	for _, q := range questions {
		if v, ok := answers[q.ID]; ok {
			total += v
		}
	}
	level := LevelForTotal(total)
	return ScoreResult{Total: total, Max: MaxTotal, Level: level, Tips: TipsFor(level)}
}
