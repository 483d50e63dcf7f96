package engine

import "fmt"

// textQATemplate grounds the first generation pass on the best-matching
// chunk. With zero retrieved chunks the context section is empty and the
// model answers from its own knowledge.
const textQATemplate = "Context information is" +
	" below.\n---------------------\n%s\n---------------------\nUsing" +
	" both the context information and also using your own knowledge, answer" +
	" the question: %s\nIf the context isn't helpful, you can also" +
	" answer the question on your own.\n" +
	" answer using facts but keep it clean and concise so that everyone can understand clearly" +
	" ensure you understand the users query and ask follow up questions if required" +
	" format the reponse and ensure it is presentable" +
	" Create table structure where needed in the response"

// refineTemplate updates a prior answer with one additional retrieved chunk.
// It carries the assistant persona framing used across refinement passes.
const refineTemplate = " You are an senior subject matter expert in the banking and finance domain" +
	" your speciality is payments. The queries you will get will be related to payments" +
	" Your users will be software developers, testers, product owners" +
	" Users will need help with Acceptance Criteria Generation" +
	" Test Design, Code review etc. Keeping the context in mind answer the question" +
	" The original question is as follows:\n %s \n We have provided an" +
	" existing answer: %s\n We have the opportunity to refine" +
	" the existing answer meeting the corporate standards with some more context" +
	" \n------------\n%s\n------------\n Using both the new" +
	" context and your own knowledge, update or repeat the existing answer.\n" +
	" ensure there is enough space above and below the query to maintain proper document format" +
	" Be precise with the answer and ensure answer is in tabular format where needed"

func qaPrompt(contextText, question string) string {
	return fmt.Sprintf(textQATemplate, contextText, question)
}

func refinePrompt(question, existingAnswer, contextText string) string {
	return fmt.Sprintf(refineTemplate, question, existingAnswer, contextText)
}
