package quiz

import (
	"fmt"
	"strings"

	"github.com/KanishkSogani/VocaLearn/pkg/models"
)

// buildPrompt constructs the generation instruction for one question. The
// question surface is written in the learner's native language while the
// tested content stays in the learning language; each template spells both
// out because the model routinely confuses the two.
func buildPrompt(qType models.QuestionType, learningLanguage, nativeLanguage, topic string, history []string) string {
	var prompt string

	switch qType {
	case models.GrammarPattern:
		prompt = fmt.Sprintf(grammarPatternTemplate, learningLanguage, nativeLanguage, topic)
	case models.SynonymAntonym:
		prompt = fmt.Sprintf(synonymAntonymTemplate, learningLanguage, nativeLanguage, topic)
	case models.DefinitionMatching:
		prompt = fmt.Sprintf(definitionMatchingTemplate, learningLanguage, nativeLanguage, topic)
	case models.PronunciationMinimalPair:
		prompt = fmt.Sprintf(minimalPairTemplate, learningLanguage, nativeLanguage, topic)
	}

	return prompt + buildHistoryBlock(history)
}

// buildHistoryBlock embeds previously asked questions as a do-not-repeat
// instruction. Advisory only: the generator does not enforce non-repetition
// after the fact.
func buildHistoryBlock(history []string) string {
	if len(history) == 0 {
		return ""
	}
	return "\n\nPrevious questions asked (DO NOT repeat these):\n" + strings.Join(history, "\n")
}

// The %[1]s verb is the learning language, %[2]s the native language and
// %[3]s the topic.

const grammarPatternTemplate = `You are creating a language learning quiz question.

LEARNER INFO:
- Learning: %[1]s <- THIS IS THE LANGUAGE THE STUDENT IS TRYING TO LEARN!
- Native language: %[2]s
- Topic: %[3]s

CRITICAL: Test %[1]s grammar (NOT %[2]s)! The student is learning %[1]s!

GRAMMAR ACCURACY: YOU MUST PROVIDE THE GRAMMATICALLY CORRECT ANSWER! Double-check your answer before responding.

STRICT REQUIREMENTS:
1. Write the ENTIRE QUESTION in %[2]s ONLY
2. Create a sentence with a blank in %[1]s (the language they're LEARNING!)
3. Test an important %[1]s grammar pattern or structure
4. All 4 options must be %[1]s words/phrases that are:
   - Grammatically related (same tense family, same verb form category, etc.)
   - Commonly confused by learners
   - Similar enough to require real understanding
5. VERIFY YOUR CORRECT ANSWER - It MUST be grammatically perfect in context
6. Include clear time markers or context clues that indicate which tense/form to use
7. Focus on practical, commonly used patterns

KEY GRAMMAR RULES TO FOLLOW (for English):
- "every day/always/usually" -> Simple Present (I go, he goes)
- "now/right now/at the moment" -> Present Continuous (I am going)
- "already/just/yet" -> Present Perfect (I have gone)
- "yesterday/last week/ago" -> Simple Past (I went)
- "will/tomorrow/next" -> Simple Future (I will go)
- "by the time/by then" -> Future Perfect (I will have gone)
- "if I were you" -> Subjunctive (were, not was)
- "wish/if only" -> Past Subjunctive

FORMAT (JSON only, no markdown):
{
  "question": "%[2]s instruction + %[1]s sentence with blank ___",
  "options": ["%[1]s form 1", "%[1]s form 2", "%[1]s form 3", "%[1]s form 4"],
  "correctAnswer": "exact %[1]s form"
}

EXAMPLE (Learning Spanish, Native English):
{
  "question": "Complete the sentence: 'Si yo ___ mas dinero, compraria una casa' (If I had more money, I would buy a house). Which form is correct for a hypothetical situation?",
  "options": ["tengo", "tuve", "tuviera", "tendria"],
  "correctAnswer": "tuviera"
}

EXAMPLE (Learning English, Native Spanish):
{
  "question": "Completa la frase: 'She ___ to school every day by bus' (Ella va a la escuela todos los dias en autobus). Cual es la forma correcta para un habito regular?",
  "options": ["go", "goes", "is going", "went"],
  "correctAnswer": "goes"
}

ANOTHER EXAMPLE (Learning English, Native Spanish):
{
  "question": "Completa la frase: 'If I ___ you, I would apologize immediately' (Si yo fuera tu, me disculparia inmediatamente). Cual es la forma correcta para una situacion hipotetica?",
  "options": ["am", "was", "were", "will be"],
  "correctAnswer": "were"
}`

const synonymAntonymTemplate = `You are creating a language learning quiz question.

LEARNER INFO:
- Learning: %[1]s <- THIS IS THE LANGUAGE THE STUDENT IS TRYING TO LEARN!
- Native language: %[2]s
- Topic: %[3]s

CRITICAL: Test %[1]s vocabulary (NOT %[2]s)! The student is learning %[1]s!

STRICT REQUIREMENTS:
1. Write the ENTIRE QUESTION in %[2]s ONLY
2. Choose a meaningful %[1]s word (the language they're LEARNING!)
3. Show the %[1]s word with its basic %[2]s translation
4. All 4 options must be %[1]s words that are:
   - Related in meaning (synonyms/antonyms/related concepts)
   - Similar enough to be confusing
   - At intermediate level
   - Commonly used in real contexts
5. Test nuanced understanding of meaning differences
6. Make it challenging by using words from the same semantic field

FORMAT (JSON only, no markdown):
{
  "question": "%[2]s question about %[1]s word 'XXXXX' (%[2]s translation)",
  "options": ["%[1]s word 1", "%[1]s word 2", "%[1]s word 3", "%[1]s word 4"],
  "correctAnswer": "exact %[1]s word"
}

EXAMPLE (Learning Spanish, Native English):
{
  "question": "What is the best synonym for 'enojado' (angry) when describing someone who is intensely furious?",
  "options": ["molesto", "furioso", "irritado", "disgustado"],
  "correctAnswer": "furioso"
}

EXAMPLE (Learning English, Native Spanish):
{
  "question": "Cual es el sinonimo mas cercano de 'intelligent' (inteligente) cuando describes un pensamiento excepcionalmente agudo?",
  "options": ["smart", "clever", "brilliant", "wise"],
  "correctAnswer": "brilliant"
}`

const definitionMatchingTemplate = `You are creating a language learning quiz question.

LEARNER INFO:
- Learning: %[1]s <- THIS IS THE LANGUAGE THE STUDENT IS TRYING TO LEARN!
- Native language: %[2]s
- Topic: %[3]s

CRITICAL: Test a %[1]s word (NOT %[2]s)! The student is learning %[1]s!

STRICT REQUIREMENTS:
1. Write the ENTIRE QUESTION in %[2]s ONLY
2. Choose a useful %[1]s word (the language they're LEARNING!)
3. Ask what the %[1]s word means
4. Show the %[1]s word CLEARLY in the question
5. All 4 options must be DETAILED DEFINITIONS in %[2]s
6. Make definitions nuanced, detailed, and challenging - test deep understanding
7. Options should be plausible alternatives that make students think

TEMPLATE:
"%[2]s question asking: What does the %[1]s word '[WORD]' mean?"

FORMAT (JSON only, no markdown):
{
  "question": "%[2]s text asking about %[1]s word 'XXXXX'",
  "options": ["%[2]s detailed definition 1", "%[2]s detailed definition 2", "%[2]s detailed definition 3", "%[2]s detailed definition 4"],
  "correctAnswer": "exact text of correct definition"
}

EXAMPLE (Learning Spanish, Native English):
{
  "question": "What does the Spanish word 'biblioteca' mean?",
  "options": ["A store where you can purchase new and used books", "A public or private institution where books and media are lent to readers", "A reading room in a university or school where students study quietly", "An archive where historical documents and manuscripts are preserved"],
  "correctAnswer": "A public or private institution where books and media are lent to readers"
}`

const minimalPairTemplate = `You are creating a language learning quiz question.

LEARNER INFO:
- Learning: %[1]s <- THIS IS THE LANGUAGE THE STUDENT IS TRYING TO LEARN!
- Native language: %[2]s
- Topic: %[3]s

CRITICAL: Test %[1]s words (NOT %[2]s)! The student is learning %[1]s!

STRICT REQUIREMENTS:
1. Write the ENTIRE QUESTION in %[2]s ONLY
2. Present a clear, detailed context or meaning in %[2]s
3. All 4 options must be %[1]s words (the language they're LEARNING!) that are:
   - Similar in sound, spelling, or commonly confused
   - Different in meaning
   - All plausible in the context
4. Make the context specific enough that only ONE answer fits
5. Test practical vocabulary that learners encounter often
6. Focus on words that cause real confusion for learners

FORMAT (JSON only, no markdown):
{
  "question": "%[2]s context describing when/where/how the word is used",
  "options": ["%[1]s word 1", "%[1]s word 2", "%[1]s word 3", "%[1]s word 4"],
  "correctAnswer": "exact %[1]s word"
}

EXAMPLE (Learning Spanish, Native English):
{
  "question": "Which word means 'I was' when talking about a temporary state or location in the past (not a permanent characteristic)?",
  "options": ["era", "estaba", "fue", "esta"],
  "correctAnswer": "estaba"
}

EXAMPLE (Learning English, Native Spanish):
{
  "question": "Que palabra significa 'influir en algo' (no 'el resultado de algo')?",
  "options": ["affect", "effect", "infect", "reflect"],
  "correctAnswer": "affect"
}`
