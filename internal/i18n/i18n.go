package i18n

// Lang is a supported UI language.
type Lang string

const (
	LangEnglish Lang = "en"
	LangHindi   Lang = "hi"
)

// ParseLang validates a language code from the URL or session.
func ParseLang(s string) (Lang, bool) {
	switch Lang(s) {
	case LangEnglish, LangHindi:
		return Lang(s), true
	}
	return "", false
}

// labels is the static bilingual label table shown on every page.
var labels = map[string]map[Lang]string{
	"dashboard":       {LangEnglish: "Production Dashboard", LangHindi: "उत्पादन डैशबोर्ड"},
	"sales_dashboard": {LangEnglish: "Sales Dashboard", LangHindi: "सेल्स डैशबोर्ड"},

	"total_orders":     {LangEnglish: "Total Orders", LangHindi: "कुल ऑर्डर"},
	"pending_orders":   {LangEnglish: "Pending Orders", LangHindi: "लंबित ऑर्डर"},
	"completed_orders": {LangEnglish: "Completed Orders", LangHindi: "पूर्ण ऑर्डर"},
	"urgent_orders":    {LangEnglish: "Urgent Orders", LangHindi: "जरूरी ऑर्डर"},

	"order_number": {LangEnglish: "Order Number", LangHindi: "ऑर्डर नंबर"},
	"status":       {LangEnglish: "Status", LangHindi: "स्थिति"},
	"action":       {LangEnglish: "Action", LangHindi: "कार्य"},

	"search_placeholder": {LangEnglish: "Search Order or Customer", LangHindi: "ऑर्डर या ग्राहक खोजें"},

	"view_details":   {LangEnglish: "View Details", LangHindi: "विवरण देखें"},
	"mark_completed": {LangEnglish: "Mark Completed", LangHindi: "पूर्ण करें"},
	"logout":         {LangEnglish: "Logout", LangHindi: "लॉगआउट"},
	"create_order":   {LangEnglish: "Create Order", LangHindi: "ऑर्डर बनाएं"},
	"edit":           {LangEnglish: "Edit", LangHindi: "संपादित करें"},
	"update_order":   {LangEnglish: "Update Order", LangHindi: "ऑर्डर अपडेट करें"},
	"save_order":     {LangEnglish: "Save Order", LangHindi: "ऑर्डर सहेजें"},
	"add_product":    {LangEnglish: "Add Another Product", LangHindi: "एक और उत्पाद जोड़ें"},

	"customer_name": {LangEnglish: "Customer Name", LangHindi: "ग्राहक नाम"},
	"place_supply":  {LangEnglish: "Place of Supply", LangHindi: "आपूर्ति स्थान"},
	"dispatch_date": {LangEnglish: "Dispatch Date", LangHindi: "डिस्पैच तिथि"},
	"delivery_time": {LangEnglish: "Delivery Time", LangHindi: "डिलीवरी समय"},

	"products":          {LangEnglish: "Products", LangHindi: "उत्पाद"},
	"product_name":      {LangEnglish: "Product Name", LangHindi: "उत्पाद नाम"},
	"product_code":      {LangEnglish: "Product Code", LangHindi: "उत्पाद कोड"},
	"quantity":          {LangEnglish: "Quantity", LangHindi: "मात्रा"},
	"revoke_completion": {LangEnglish: "Revoke Completion", LangHindi: "पूर्णता हटाएं"},
}

// T looks up a label in the given language. Unknown languages fall back
// to English; unknown keys fall back to the key itself so a missing
// label is visible rather than blank.
func T(lang Lang, key string) string {
	entry, ok := labels[key]
	if !ok {
		return key
	}
	if s, ok := entry[lang]; ok {
		return s
	}
	return entry[LangEnglish]
}
