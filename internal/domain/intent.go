package domain

// Intent is the top-level bucket for an utterance.
type Intent string

const (
	IntentCommand      Intent = "command"
	IntentSearch       Intent = "search"
	IntentConversation Intent = "conversation"
)

// Classification is the classifier's verdict for one utterance. Response
// carries the canned reply for the search/conversation branches; it is
// empty for commands.
type Classification struct {
	Intent   Intent `json:"intent"`
	Response string `json:"response,omitempty"`
}

// Token is one linguistically annotated token produced by an Annotator.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Dep   string `json:"dep"`
}

// Part-of-speech tags and dependency labels the classifier consumes.
const (
	POSPronoun = "PRON"
	POSAdverb  = "ADV"
	POSVerb    = "VERB"
	POSNoun    = "NOUN"
	POSOther   = "X"

	DepAdvMod = "advmod"
	DepNone   = ""
)
