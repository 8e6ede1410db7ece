package i18n

// Hindi messages. Keys absent here fall back to English (which already
// carries a Hindi tail for the security notices).
var messagesHI = map[string]string{
	MsgTransactional: "आपकी सुरक्षा और गोपनीयता के लिए, मैं व्यक्तिगत खाता जानकारी, भुगतान स्थिति या आवेदन स्थिति " +
		"नहीं देख सकता। कृपया स्थिति जांच के लिए आधिकारिक हेल्पलाइन से संपर्क करें या योजना की आधिकारिक वेबसाइट देखें। " +
		"मैं पात्रता, दस्तावेज़ों और आवेदन प्रक्रिया की सामान्य जानकारी में मदद कर सकता हूँ।",

	MsgNoInfo: "इस विषय पर सत्यापित जानकारी नहीं मिली। कृपया आधिकारिक सरकारी पोर्टल (india.gov.in) देखें या " +
		"अपने निकटतम जन सेवा केंद्र से संपर्क करें।",

	MsgDecline: "मैं अभी उत्तर देने में असमर्थ हूँ। कृपया बाद में पुनः प्रयास करें।",

	MsgCapabilities: "मैं भारतीय सरकारी सेवाओं में आपकी मदद कर सकता हूँ: किसानों के लिए PM-KISAN, आधार सेवाएँ, " +
		"पेंशन योजनाएँ, रोजगार कार्यक्रम, डिजिटल राशन कार्ड और स्वास्थ्य बीमा। कृपया किसी विशेष योजना के बारे में पूछें।",
}
