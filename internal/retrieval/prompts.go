package retrieval

const summaryPrompt = `You are a helpful assistant optimizing text for an AI conversation system. Your task is to clean and summarize the retrieved context below so that it contains only the most relevant and helpful information for generating a personalized and context-aware reply.
You have the last message (most recent message first) between the user and the other person, and based on this knowledge you need to summarize the context.

Please follow these rules:
1. Keep important facts, user goals, preferences, or concerns (e.g., job roles, industries, projects, tools, and pain points).
2. Remove filler, repetition, generic marketing fluff, and content irrelevant to the user's conversation.
3. Keep nuanced cues, implied intentions, or emotions that may help craft a better reply.
4. If possible, organize the output into clear bullet points or short, coherent paragraphs.
5. Do NOT add any external assumptions or fabricate content.
6. Ensure the final summary is concise, readable, and optimized for the next LLM step that will generate a response.

Last Message: "%s"
--- Retrieved Context Start ---
%s
--- Retrieved Context End ---`

const recentPrompt = `Summarize the following conversation in two or three plain sentences capturing the topics, names and goals mentioned. No preamble, no formatting.

Conversation (most recent first):
%s`
