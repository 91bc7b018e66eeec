package circulation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The key is the English text.
const (
	MsgSelectBook       = "Please select a book"
	MsgSelectUser       = "Please select a user"
	MsgSelectDueDate    = "Please set a due date"
	MsgBookNotFound     = "No book found with code: %s"
	MsgBookUnavailable  = "This book is currently on loan"
	MsgErrorDetail      = "Error: %s"
	MsgCreateLoanFailed = "An unexpected error occurred while creating the loan"
	MsgReturnLoanFailed = "Failed to return the book"
	MsgLoadFailed       = "Failed to load the circulation desk"
)

var arabic = map[string]string{
	MsgSelectBook:       "يرجى اختيار كتاب",
	MsgSelectUser:       "يرجى اختيار مستخدم",
	MsgSelectDueDate:    "يرجى تحديد تاريخ الإرجاع",
	MsgBookNotFound:     "لم يتم العثور على الكتاب بهذا الرمز: %s",
	MsgBookUnavailable:  "هذا الكتاب معار حاليا",
	MsgErrorDetail:      "خطأ: %s",
	MsgCreateLoanFailed: "حدث خطأ غير متوقع أثناء إنشاء الإعارة",
	MsgReturnLoanFailed: "فشل في إرجاع الكتاب",
	MsgLoadFailed:       "فشل في تحميل بيانات الإعارة",
}

var (
	supported = []language.Tag{language.English, language.Arabic}
	matcher   = language.NewMatcher(supported)
	messages  = newMessageCatalog()
)

func newMessageCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range arabic {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
		if err := b.SetString(language.Arabic, key, text); err != nil {
			panic(err)
		}
	}
	return b
}

// Catalog renders user-facing messages in one language.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// NewCatalog picks the best supported language for locale, which may be a
// single tag ("ar") or an Accept-Language style list ("ar-SA,en;q=0.8").
// Unknown locales fall back to English.
func NewCatalog(locale string) *Catalog {
	_, idx := language.MatchStrings(matcher, locale)
	tag := supported[idx]
	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// Language returns the selected language.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// Text renders the message for key.
func (c *Catalog) Text(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}
