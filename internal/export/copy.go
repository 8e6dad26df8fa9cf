package export

import "github.com/filhoindependente/detoxquiz/internal/quiz"

var levelMessages = map[quiz.RiskLevel]string{
	quiz.RiskBaixa:     "Há equilíbrio no uso de telas. Continue reforçando hábitos saudáveis.",
	quiz.RiskModerada:  "Alguns sinais pedem atenção. Ajustes consistentes podem evitar agravamento.",
	quiz.RiskAlta:      "Há impacto significativo. É hora de intervir com medidas claras.",
	quiz.RiskMuitoAlta: "Situação crítica – precisa de um plano intensivo e apoio.",
}

// CopyFor builds the presentation copy for a risk level. One entry per
// level; message and action list differ, frame text is shared.
func CopyFor(level quiz.RiskLevel) PresentationCopy {
	return PresentationCopy{
		Title:     "Resultado do Teste",
		Subtitle:  quiz.BrandName,
		LevelName: quiz.LevelName(level),
		Message:   levelMessages[level],
		Actions:   quiz.TipsFor(level),
		Footer:    "Conheça o curso Detox Digital Infantil: " + quiz.CourseURL,
		LogoRef:   quiz.LogoURL,
	}
}
