package prompt

// TicketTemplate receives the user query and the ticket text block.
const TicketTemplate = `You MUST respond ONLY in this strict structured format:

HEADER:
- Summary Title
- Current Ticket Status (infer if missing)
- Priority (infer logically)
- Short one-line overview

BODY:
1. Explanation of the ticket information
2. What the data implies
3. Actions already taken
4. Recommended next steps for the user
5. Any warnings or delays

FOOTER:
- Expected resolution time (logical assumption)
- Helpful guidance or closing line

----------------------
User Query:
%s

Ticket Data:
%s
`

// DeepAnswerTemplate receives the tools consulted, the combined hits and the
// user query.
const DeepAnswerTemplate = `Provide a detailed, structured technical answer using ONLY this format:

TECHNICAL HEADER:
- Main Technical Topic (1 line)
- 2–3 line overview
- Tools consulted: %s

ANALYSIS:
1. Direct explanation of the user query
2. Key technical concepts involved
3. Breakdown of how the technology works
4. Insights extracted from search results:
%s

EXECUTION STEPS:
- Step-by-step instructions
- Commands or configurations (if applicable)
- Best practices

CONCLUSION:
- Final recommendation
- Potential issues to watch out for
- One-line summary advice

---------------------
User Query:
%s
`
