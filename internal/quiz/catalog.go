package quiz

// Brand constants used by presentation copy and the embedding host.
const (
	BrandName = "Teste de Dependência Digital Infantil"
	CourseURL = "https://filhoindependente.com.br/detox_digital/"
	LogoURL   = "https://customer-assets.emergentagent.com/job_detox-digital/artifacts/me36p74r_Logo%20FeR.png"
)

// Shared Likert options for the frequency-style questions.
var (
	optNunca          = Option{Label: "Nunca", Value: 0}
	optRaramente      = Option{Label: "Raramente", Value: 1}
	optAsVezes        = Option{Label: "Às vezes", Value: 2}
	optFrequentemente = Option{Label: "Frequentemente", Value: 3}
	optSempre         = Option{Label: "Sempre", Value: 4}
)

// questions is the fixed catalog. Order and ids are stable: drafts and
// records reference questions by id, and record answer slices follow this
// order positionally.
var questions = []Question{
	{
		ID:     "q1",
		Prompt: "Tempo de Tela Diário: Quantas horas, em média, por dia seu filho(a) passa em atividades de tela?",
		Options: []Option{
			{Label: "Menos de 1 hora", Value: 0},
			{Label: "1–2 horas", Value: 1},
			{Label: "3–4 horas", Value: 2},
			{Label: "5–6 horas", Value: 3},
			{Label: "Mais de 6 horas", Value: 4},
		},
	},
	{
		ID:      "q2",
		Prompt:  "Extrapolar Limites de Uso: Com que frequência ele(a) fica mais tempo do que o combinado?",
		Options: []Option{optNunca, optRaramente, optAsVezes, optFrequentemente, optSempre},
	},
	{
		ID:     "q3",
		Prompt: "Reação ao Desligar: Com que frequência fica irritado(a) quando precisa desligar?",
		Options: []Option{
			{Label: "Nunca reage mal", Value: 0},
			{Label: "Raramente", Value: 1},
			{Label: "Às vezes", Value: 2},
			{Label: "Fica irritado com frequência", Value: 3},
			{Label: "Quase sempre faz birra ou se irrita", Value: 4},
		},
	},
	{
		ID:     "q4",
		Prompt: "Pedidos Frequentes por Tela: Com que frequência pede insistentemente para usar telas fora do horário?",
		Options: []Option{
			optNunca, optRaramente, optAsVezes,
			{Label: "Frequente", Value: 3},
			{Label: "Muito frequente", Value: 4},
		},
	},
	{
		ID:     "q5",
		Prompt: "Preferência por Telas vs. Outras Atividades: Com que frequência prefere telas quando há alternativas?",
		Options: []Option{
			{Label: "Nunca prefere telas", Value: 0},
			{Label: "Raramente", Value: 1},
			{Label: "Às vezes prefere", Value: 2},
			{Label: "Frequentemente escolhe telas", Value: 3},
			{Label: "Sempre prefere telas", Value: 4},
		},
	},
	{
		ID:      "q6",
		Prompt:  "Uso em Momentos Inadequados: Com que frequência usa ou tenta usar dispositivos em horários impróprios?",
		Options: []Option{optNunca, optRaramente, optAsVezes, optFrequentemente, optSempre},
	},
	{
		ID:     "q7",
		Prompt: "Dificuldade em Impor Limites: Com que frequência é difícil manter regras de tempo de tela?",
		Options: []Option{
			{Label: "Não tenho dificuldade", Value: 0},
			{Label: "Pouca dificuldade", Value: 1},
			{Label: "Às vezes é difícil", Value: 2},
			{Label: "Tenho muita dificuldade", Value: 3},
			{Label: "Praticamente impossível controlar", Value: 4},
		},
	},
	{
		ID:     "q8",
		Prompt: "Ansiedade na Falta de Tela: Com que frequência demonstra inquietação/ansiedade sem telas?",
		Options: []Option{
			{Label: "Nunca – lida bem", Value: 0},
			{Label: "Raramente fica inquieto", Value: 1},
			{Label: "Às vezes sim", Value: 2},
			{Label: "Frequentemente demonstra ansiedade", Value: 3},
			{Label: "Sempre fica agitado sem telas", Value: 4},
		},
	},
	{
		ID:     "q9",
		Prompt: "Impacto no Sono: Com que frequência o uso de dispositivos atrapalha o sono?",
		Options: []Option{
			{Label: "Nunca afeta o sono", Value: 0},
			{Label: "Raramente", Value: 1},
			{Label: "Às vezes", Value: 2},
			{Label: "Frequentemente", Value: 3},
			{Label: "Quase todas as noites", Value: 4},
		},
	},
	{
		ID:     "q10",
		Prompt: "Prejuízo nas Responsabilidades: Com que frequência deixa de cumprir tarefas por causa da tela?",
		Options: []Option{
			{Label: "Nunca deixa de cumprir", Value: 0},
			{Label: "Raramente", Value: 1},
			{Label: "Às vezes", Value: 2},
			{Label: "Frequentemente prejudica", Value: 3},
			{Label: "Sempre troca deveres por tela", Value: 4},
		},
	},
	{
		ID:     "q11",
		Prompt: "Uso de Tela como Calmante: Com que frequência usa telas para acalmar/entreter em situações difíceis?",
		Options: []Option{
			{Label: "Nunca recorro a telas", Value: 0},
			{Label: "Quase nunca", Value: 1},
			{Label: "Às vezes", Value: 2},
			{Label: "Faço isso com frequência", Value: 3},
			{Label: "Sempre uso essa estratégia", Value: 4},
		},
	},
	{
		ID:     "q12",
		Prompt: "Tolerância (Aumento Gradual): Com que frequência quer mais tempo de tela ou conteúdos mais intensos?",
		Options: []Option{
			{Label: "Não, se contenta facilmente", Value: 0},
			{Label: "Raramente", Value: 1},
			{Label: "Percebo um pouco", Value: 2},
			{Label: "Com frequência quer mais", Value: 3},
			{Label: "Sempre quer prolongar/intensificar", Value: 4},
		},
	},
	{
		ID:     "q13",
		Prompt: "Uso Escondido: Com que frequência tenta usar dispositivos às escondidas?",
		Options: []Option{
			{Label: "Nunca fez isso", Value: 0},
			{Label: "Uma vez/raramente", Value: 1},
			{Label: "Algumas vezes", Value: 2},
			{Label: "Com certa frequência", Value: 3},
			{Label: "Sempre tenta driblar as regras", Value: 4},
		},
	},
	{
		ID:     "q14",
		Prompt: "Imersão Excessiva: Com que frequência não responde por estar vidrado na tela?",
		Options: []Option{
			optNunca, optRaramente, optAsVezes, optFrequentemente,
			{Label: "Quase sempre", Value: 4},
		},
	},
	{
		ID:     "q15",
		Prompt: "Conflitos Familiares: Com que frequência o uso de telas gera brigas em casa?",
		Options: []Option{
			{Label: "Nunca houve conflito", Value: 0},
			{Label: "Raramente", Value: 1},
			{Label: "Ocasionalmente", Value: 2},
			{Label: "Frequentemente brigamos", Value: 3},
			{Label: "Fonte constante de brigas", Value: 4},
		},
	},
	{
		ID:     "q16",
		Prompt: "Desinteresse por Atividades Offline: Com que frequência se entedia sem eletrônicos?",
		Options: []Option{
			{Label: "Nunca – gosta de atividades offline", Value: 0},
			{Label: "Raramente", Value: 1},
			{Label: "Às vezes", Value: 2},
			{Label: "Frequentemente mostra desinteresse", Value: 3},
			{Label: "Sempre – nada fora das telas entretém", Value: 4},
		},
	},
	{
		ID:     "q17",
		Prompt: "Comprometimento Social: Com que frequência prioriza telas em vez de interações sociais?",
		Options: []Option{
			optNunca, optRaramente, optAsVezes,
			{Label: "Muitas vezes", Value: 3},
			{Label: "Praticamente sempre", Value: 4},
		},
	},
	{
		ID:     "q18",
		Prompt: "Dependência Emocional: Com que frequência precisa de tela para regular o humor?",
		Options: []Option{
			{Label: "Nunca – se acalma de outras formas", Value: 0},
			{Label: "Raramente", Value: 1},
			{Label: "Às vezes recorre à tela", Value: 2},
			{Label: "Frequentemente é o único jeito", Value: 3},
			{Label: "Sempre – sem tela não se acalma", Value: 4},
		},
	},
	{
		ID:     "q19",
		Prompt: "Tentativas de Detox: Com que frequência tentativas de reduzir o uso fracassam?",
		Options: []Option{
			{Label: "Nunca precisei tentar", Value: 0},
			{Label: "Tentei e consegui manter", Value: 1},
			{Label: "Parcialmente bem-sucedido", Value: 2},
			{Label: "Frequentemente não dá certo", Value: 3},
			{Label: "Sempre fracasso em pouco tempo", Value: 4},
		},
	},
	{
		ID:      "q20",
		Prompt:  "Nível de Preocupação: Com que frequência você se preocupa que o uso está fora de controle?",
		Options: []Option{optNunca, optRaramente, optAsVezes, optFrequentemente, optSempre},
	},
}

// Catalog returns the question list. The backing data is immutable for the
// process lifetime; callers get a fresh slice header.
func Catalog() []Question {
	return append([]Question(nil), questions...)
}

// CatalogSize is the number of questions in the fixed catalog.
func CatalogSize() int { return len(questions) }

// HasOptionValue reports whether v is one of q's allowed option values.
func HasOptionValue(q Question, v int) bool {
	for _, opt := range q.Options {
		if opt.Value == v {
			return true
		}
	}
	return false
}
