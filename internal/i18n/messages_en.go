package i18n

// English messages. Security notices stay bilingual (EN/HI) the way the
// original citizen-facing portal phrased them, since a blocked request may
// come from a speaker of either language.
var messagesEN = map[string]string{
	MsgRateLimited: "Too many requests. Please try again in a minute. (कृपया थोड़ी देर बाद पुनः प्रयास करें।)",

	MsgPIIAadhaar: "Security Alert: Please do not share Aadhaar numbers. (सुरक्षा चेतावनी: कृपया आधार नंबर साझा न करें।)",

	MsgPIIPAN: "Security Alert: Please do not share PAN card details. (सुरक्षा चेतावनी: कृपया पैन कार्ड विवरण साझा न करें।)",

	MsgPIIPhone: "Security Alert: Please do not share phone numbers. (सुरक्षा चेतावनी: कृपया फोन नंबर साझा न करें।)",

	MsgTransactional: "For your safety and privacy, I cannot access personal account information, payment status, " +
		"application status, or process transactions. Please contact the official helpline or visit the scheme's " +
		"official website for status checks. I can still help with general information about eligibility, " +
		"documents, and application processes.",

	MsgInjection: "Potentially unsafe instructions detected. Please rephrase your question about government services.",

	MsgNoInfo: "I could not find verified information on this topic. Please consult the official government " +
		"portals (india.gov.in) or your nearest Common Service Centre.",

	MsgDecline: "I am unable to answer right now. Please try again later.",

	MsgCapabilities: "I can help you with Indian government services including PM-KISAN for farmers, Aadhaar " +
		"services, pension schemes, employment programs, digital ration cards, and health insurance. " +
		"Please ask about a specific scheme.",
}
