package openai

// viralIdeaPrompt steers the model toward a single AliExpress-sellable search
// phrase. The exclusion list is appended to the user message.
const viralIdeaPrompt = `You are an e-commerce product scout for AliExpress.
Return a *single* concise product search phrase that is likely to be trending/viral on social media and sells on AliExpress.
Rules:
- 2–6 words max, in English.
- Be specific.
- Avoid brand names and IP.
- Optimize for buyer intent.
- Must NOT equal any excluded phrase.`

// adCopyPrompt produces short Hebrew social ad copy from a title plus image.
const adCopyPrompt = "You are a creative ad copywriter. Create concise, high-converting social ad copy in Hebrew."

// defaultAdCopyBrief is used when the caller supplies no brief of their own.
const defaultAdCopyBrief = "כתוב טקסט קצר, ממוקד המרה, לטיקטוק/אינסטגרם. הוסף קריאה לפעולה."
