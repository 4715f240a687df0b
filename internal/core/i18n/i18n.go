package i18n

// translations holds the string tables served by T.
// Only the keys the engine itself emits live here; theme content is
// translated upstream and passed through untouched.
var translations = map[string]map[string]string{
	"en": {
		"error.full_name":       "Please enter your full name",
		"error.phone":           "Please enter a valid phone number",
		"error.email":           "Please enter a valid email address",
		"error.address":         "Please enter your address",
		"error.city":            "Please enter your city",
		"error.notes":           "Notes are too long",
		"error.option_required": "Please choose an option for every item",
		"error.color_required":  "Please choose a color for every item",
		"error.size_required":   "Please choose a size for every item",
		"summary.price_per_item": "Price per item",
		"summary.shipping":       "Shipping",
		"summary.discount":       "Discount",
		"summary.total":          "Total",
		"summary.free":           "Free",
	},
	"ar": {
		"error.full_name":       "يرجى إدخال الاسم الكامل",
		"error.phone":           "يرجى إدخال رقم هاتف صحيح",
		"error.email":           "يرجى إدخال بريد إلكتروني صحيح",
		"error.address":         "يرجى إدخال العنوان",
		"error.city":            "يرجى إدخال المدينة",
		"error.notes":           "الملاحظات طويلة جدًا",
		"error.option_required": "يرجى اختيار خيار لكل قطعة",
		"error.color_required":  "يرجى اختيار لون لكل قطعة",
		"error.size_required":   "يرجى اختيار مقاس لكل قطعة",
		"summary.price_per_item": "سعر القطعة",
		"summary.shipping":       "الشحن",
		"summary.discount":       "الخصم",
		"summary.total":          "الإجمالي",
		"summary.free":           "مجاني",
	},
}

// T returns the translation for key in lang, falling back to English,
// then to the key itself when no entry exists.
func T(key, lang string) string {
	if table, ok := translations[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := translations["en"][key]; ok {
		return s
	}
	return key
}
