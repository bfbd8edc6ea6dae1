package aigateway

import (
	"fmt"
	"strings"
)

const summaryPreamble = "Por favor, gere um resumo claro e organizado do seguinte texto, focado nos pontos principais para um estudante de odontologia:"

const questionsPreamble = "Com base no texto a seguir, crie 5 questões de múltipla escolha para um estudante de odontologia. " +
	"Cada questão deve ter 4 opções distintas e uma resposta correta, que deve ser exatamente igual a uma das opções. " +
	"Formate a saída exatamente como o schema JSON fornecido."

const chatPersona = `Você é um assistente de estudos especializado em odontologia. Sua tarefa é responder à pergunta do usuário baseando-se exclusivamente no contexto dos documentos de estudo fornecidos. Não utilize conhecimento externo. Se a resposta não estiver contida nos documentos, informe claramente que não encontrou a informação nos materiais fornecidos.

Regras de citação:
1. Cada documento do contexto é identificado por um número, no formato [Documento N: nome].
2. Sempre que usar uma informação, insira no texto da resposta o marcador [N] do documento de onde ela veio.
3. Para cada marcador usado, inclua em "sources" um item com "id" igual a N e "quote" com o trecho exato do documento que sustenta a afirmação.
4. Responda em JSON puro e válido no formato {"answer": "...", "sources": [{"id": 1, "quote": "..."}]}, sem texto fora do JSON.`

func BuildSummaryPrompt(text string) string {
	return summaryPreamble + "\n\n---\n\n" + text
}

func BuildQuestionsPrompt(text string) string {
	return questionsPreamble + "\n\n---\n\n" + text
}

func BuildChatPrompt(question string, docs []ContextDocument) string {
	var b strings.Builder
	b.WriteString(chatPersona)
	b.WriteString("\n\n--- CONTEXTO DOS DOCUMENTOS ---\n")
	for i, doc := range docs {
		fmt.Fprintf(&b, "[Documento %d: %s]\n%s\n\n", i+1, doc.Name, doc.Content)
	}
	b.WriteString("--- FIM DO CONTEXTO ---\n\n")
	fmt.Fprintf(&b, "PERGUNTA DO USUÁRIO: %q\n\nSua Resposta:", question)
	return b.String()
}
