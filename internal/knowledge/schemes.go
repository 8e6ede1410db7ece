package knowledge

// SourceTypeScheme marks documents from the curated government-scheme corpus.
const SourceTypeScheme = "scheme"

// SchemeDocuments returns the curated corpus of verified scheme summaries.
// IDs are stable so re-indexing updates documents in place instead of
// duplicating them.
func SchemeDocuments() []Document {
	return []Document{
		{
			ID: "pm-kisan",
			Content: "PM-KISAN Scheme provides ₹6,000 per year to eligible farmer families in three equal " +
				"installments. Eligibility: Small and marginal farmer families with combined landholding up to " +
				"2 hectares. Required documents: Land records, Aadhaar card, bank account details. Apply through " +
				"Common Service Centers or the PM-KISAN mobile app.",
		},
		{
			ID: "aadhaar",
			Content: "Aadhaar services include enrollment, update, and download. For enrollment: Visit any Aadhaar " +
				"center with proof of identity, proof of address, and date of birth proof. For updates: Use the " +
				"online portal uidai.gov.in or visit Aadhaar centers. Download e-Aadhaar from the official website " +
				"using your enrollment number.",
		},
		{
			ID: "pension",
			Content: "Government pension schemes include: 1) National Social Assistance Programme (NSAP) for " +
				"elderly, widows, disabled 2) Atal Pension Yojana for unorganized sector workers 3) Employees' " +
				"Pension Scheme for organized sector. Eligibility varies by scheme but generally requires age 60+ " +
				"and income criteria.",
		},
		{
			ID: "employment",
			Content: "Employment programs: 1) MNREGA - 100 days guaranteed rural employment 2) National Career " +
				"Service - Job portal and career counseling 3) Skill India Mission - Vocational training 4) StartUp " +
				"India - Entrepreneurship support. Visit your local employment exchange or the National Career " +
				"Service portal for registration.",
		},
		{
			ID: "ration-card",
			Content: "Digital Ration Card application: 1) Apply through your state's food department portal " +
				"2) Visit Common Service Centers 3) Use the Ration Card mobile app. Required: Aadhaar card, address " +
				"proof, income certificate, passport photos. The card provides subsidized food grains under the " +
				"National Food Security Act.",
		},
		{
			ID: "health-insurance",
			Content: "Ayushman Bharat PM-JAY provides health insurance coverage of ₹5 lakhs per family annually. " +
				"Eligibility: Based on socio-economic caste census data. Coverage: Hospitalization, surgery, and " +
				"medical treatments. Apply at empaneled hospitals or Common Service Centers. Bring Aadhaar and " +
				"income certificate for verification.",
		},
	}
}
