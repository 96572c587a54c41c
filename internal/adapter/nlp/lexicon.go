package nlp

// Lexicons for the rule-based Portuguese annotator. These only need to
// cover what the classifier consumes: lemmas of command verbs, pronoun
// and adverb tagging, and adverbial-modifier labeling of interrogatives.

// verbLemmas maps common inflected forms to their infinitive. Forms that
// are homographs of frequent non-verbs stay out: "para" (preposition),
// "agenda" and "marca" (nouns) would lemmatize everyday utterances into
// command verbs.
var verbLemmas = map[string]string{
	"acende":     "acender",
	"acenda":     "acender",
	"acendeu":    "acender",
	"apaga":      "apagar",
	"apague":     "apagar",
	"apagou":     "apagar",
	"liga":       "ligar",
	"ligue":      "ligar",
	"ligou":      "ligar",
	"desliga":    "desligar",
	"desligue":   "desligar",
	"abra":       "abrir",
	"abre":       "abrir",
	"feche":      "fechar",
	"fecha":      "fechar",
	"toque":      "tocar",
	"toca":       "tocar",
	"pare":       "parar",
	"lembre":     "lembrar",
	"lembra":     "lembrar",
	"agende":     "agendar",
	"defina":     "definir",
	"define":     "definir",
	"marque":     "marcar",
	"configure":  "configurar",
	"configura":  "configurar",
	"ajuste":     "ajustar",
	"ajusta":     "ajustar",
	"crie":       "criar",
	"cria":       "criar",
	"delete":     "deletar",
	"exclua":     "excluir",
	"remova":     "remover",
	"mude":       "mudar",
	"muda":       "mudar",
	"altere":     "alterar",
	"altera":     "alterar",
	"modifique":  "modificar",
	"modifica":   "modificar",
	"acorde":     "acordar",
	"acorda":     "acordar",
	"pesquise":   "pesquisar",
	"pesquisa":   "pesquisar",
	"busque":     "buscar",
	"busca":      "buscar",
	"procure":    "procurar",
	"procura":    "procurar",
	"encontre":   "encontrar",
	"encontra":   "encontrar",
	"acendendo":  "acender",
	"apagando":   "apagar",
	"ligando":    "ligar",
	"desligando": "desligar",
}

// pronouns covers personal and interrogative pronouns.
var pronouns = map[string]bool{
	"eu": true, "tu": true, "ele": true, "ela": true, "nós": true,
	"vocês": true, "você": true, "me": true, "te": true, "se": true,
	"isso": true, "isto": true, "aquilo": true,
	"que": true, "quem": true, "qual": true, "quais": true,
}

// adverbs covers frequent adverbs, interrogative adverbs included.
var adverbs = map[string]bool{
	"onde": true, "quando": true, "como": true, "porque": true,
	"quanto": true, "quanta": true, "já": true, "ainda": true,
	"sempre": true, "nunca": true, "muito": true, "pouco": true,
	"agora": true, "depois": true, "hoje": true, "amanhã": true,
}

// interrogatives receive the advmod dependency label: an interrogative
// at any position modifies the clause it opens. Bare "que" is excluded:
// it is almost always the conjunction, and the interrogative use is
// covered by the "o que é" search phrase.
var interrogatives = map[string]bool{
	"onde": true, "quando": true, "como": true, "porque": true,
	"quanto": true, "quanta": true, "qual": true, "quais": true,
	"quem": true,
}
