package llm

import "fmt"

// InsufficientInfoMessage is the customer-facing reply when retrieval finds
// nothing relevant. Zero indexed hits for a query is a valid outcome, not an
// error.
const InsufficientInfoMessage = "I don't have enough information to answer that. " +
	"Please visit www.dbs.com.sg/personal/support or call the hotline 1800 111 1111."

const answerTemplate = `You are a helpful DBS Singapore customer support assistant.
Answer the user's question based ONLY on the following context retrieved from DBS Help & Support articles.

Rules:
- Be concise and practical.
- If the context contains step-by-step instructions, present them clearly.
- Mention relevant channels (digibank mobile app, digibank online, branch, hotline 1800 111 1111).
- Include the source URL(s) at the end of your answer so the user can read more.
- If the context does not contain enough information to answer, say so and suggest the user visit www.dbs.com.sg/personal/support or call the hotline.

Context:
%s

Question: %s

Answer:`

// BuildAnswerPrompt fills the support-assistant template with retrieved
// context and the user's question.
func BuildAnswerPrompt(context, question string) string {
	return fmt.Sprintf(answerTemplate, context, question)
}
