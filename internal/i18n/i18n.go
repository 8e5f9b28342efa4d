// Package i18n provides internationalization support for the balance service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	if msg, ok := localeMessages[key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Translatef translates key and formats the message with args.
func (t *Translator) Translatef(key, locale string, args ...any) string {
	return fmt.Sprintf(t.Translate(key, locale), args...)
}

// SupportsLocale reports whether messages exist for locale.
func (t *Translator) SupportsLocale(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	return ParseLocale(c.GetHeader(AcceptLanguageHeader))
}

// ParseLocale picks the first language of an Accept-Language value
// (e.g. "pt-BR,en;q=0.8" gives "pt") if it is supported.
func ParseLocale(acceptLang string) string {
	if acceptLang == "" {
		return DefaultLocale
	}

	first, _, _ := strings.Cut(acceptLang, ",")
	lang, _, _ := strings.Cut(first, ";")
	lang = strings.TrimSpace(lang)
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)

	if _, ok := defaultMessages[lang]; ok {
		return lang
	}
	return DefaultLocale
}

var defaultMessages = map[string]map[string]string{
	"en": {
		"error.invalid_request":      "Invalid request",
		"error.invalid_request_body": "Invalid request body",
		"error.internal_error":       "An unexpected error occurred",
		"error.unauthorized":         "Unauthorized",
		"error.invalid_credentials":  "Invalid email or password",
		"error.api_key_required":     "API key is required",
		"error.invalid_api_key":      "Invalid API key",
		"error.not_found":            "Not found",
		"error.rate_limit_exceeded":  "Too many requests, please try again later",
		"error.conflict":             "Conflict",
		"error.invalid_token":        "Invalid or expired token",
		"error.token_required":       "Authentication token is required",
		"error.timeout":              "The request took too long to complete",
		"error.service_unavailable":  "Storage is not available",
		"error.body_too_large":       "Request body is too large",

		"error.validation.invalid_balance":    "Please enter a valid card balance.",
		"error.validation.balance_too_large":  "Balance exceeds the supported maximum of %s.",
		"error.validation.no_priced_items":    "Add at least one item with a price.",
		"error.validation.invalid_amount":     "Amounts must be numbers such as 12.84.",
		"error.validation.duplicate_item_id":  "Each item must have a unique id.",
		"error.validation.too_many_items":     "Too many items; the maximum is %d.",
		"error.validation.missing_item_price": "Every item needs a price.",

		"match.perfect.label":       "Perfect Match",
		"match.partial.label":       "Best Possible",
		"match.no_solution.label":   "No Solution",
		"match.perfect.summary":     "Buying these exact items will leave your card with a %s balance.",
		"match.partial.summary":     "This is the closest combination. Your card will still have %s remaining.",
		"match.no_solution.summary": "None of the items fit within your balance. Try adding smaller items.",

		"report.item":      "ITEM",
		"report.quantity":  "QTY",
		"report.unit":      "UNIT",
		"report.total":     "TOTAL",
		"report.budget":    "Budget",
		"report.spent":     "Spent",
		"report.remaining": "Remaining",
	},
	"pt": {
		"error.invalid_request":      "Requisição inválida",
		"error.invalid_request_body": "Corpo da requisição inválido",
		"error.internal_error":       "Ocorreu um erro inesperado",
		"error.unauthorized":         "Não autorizado",
		"error.invalid_credentials":  "E-mail ou senha inválidos",
		"error.api_key_required":     "Chave de API é obrigatória",
		"error.invalid_api_key":      "Chave de API inválida",
		"error.not_found":            "Não encontrado",
		"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
		"error.conflict":             "Conflito",
		"error.invalid_token":        "Token inválido ou expirado",
		"error.token_required":       "Token de autenticação é obrigatório",
		"error.timeout":              "A requisição demorou demais para ser concluída",
		"error.service_unavailable":  "Armazenamento indisponível",
		"error.body_too_large":       "Corpo da requisição muito grande",

		"error.validation.invalid_balance":    "Informe um saldo de cartão válido.",
		"error.validation.balance_too_large":  "O saldo excede o máximo suportado de %s.",
		"error.validation.no_priced_items":    "Adicione pelo menos um item com preço.",
		"error.validation.invalid_amount":     "Valores devem ser números como 12.84.",
		"error.validation.duplicate_item_id":  "Cada item deve ter um id único.",
		"error.validation.too_many_items":     "Itens demais; o máximo é %d.",
		"error.validation.missing_item_price": "Todo item precisa de um preço.",

		"match.perfect.label":       "Combinação Perfeita",
		"match.partial.label":       "Melhor Possível",
		"match.no_solution.label":   "Sem Solução",
		"match.perfect.summary":     "Comprando exatamente estes itens, seu cartão ficará com saldo de %s.",
		"match.partial.summary":     "Esta é a combinação mais próxima. Seu cartão ainda terá %s restantes.",
		"match.no_solution.summary": "Nenhum item cabe no seu saldo. Tente adicionar itens menores.",

		"report.item":      "ITEM",
		"report.quantity":  "QTD",
		"report.unit":      "UNITÁRIO",
		"report.total":     "TOTAL",
		"report.budget":    "Saldo",
		"report.spent":     "Gasto",
		"report.remaining": "Restante",
	},
	"nl": {
		"error.invalid_request":      "Ongeldig verzoek",
		"error.invalid_request_body": "Ongeldige aanvraag body",
		"error.internal_error":       "Er is een onverwachte fout opgetreden",
		"error.unauthorized":         "Niet geautoriseerd",
		"error.invalid_credentials":  "Ongeldig e-mailadres of wachtwoord",
		"error.api_key_required":     "API-sleutel is vereist",
		"error.invalid_api_key":      "Ongeldige API-sleutel",
		"error.not_found":            "Niet gevonden",
		"error.rate_limit_exceeded":  "Te veel verzoeken, probeer het later opnieuw",
		"error.conflict":             "Conflict",
		"error.invalid_token":        "Ongeldig of verlopen token",
		"error.token_required":       "Authenticatietoken is vereist",
		"error.timeout":              "Het verzoek duurde te lang",
		"error.service_unavailable":  "Opslag is niet beschikbaar",
		"error.body_too_large":       "Aanvraag body is te groot",

		"error.validation.invalid_balance":    "Voer een geldig kaartsaldo in.",
		"error.validation.balance_too_large":  "Het saldo overschrijdt het ondersteunde maximum van %s.",
		"error.validation.no_priced_items":    "Voeg minstens één item met een prijs toe.",
		"error.validation.invalid_amount":     "Bedragen moeten getallen zijn zoals 12.84.",
		"error.validation.duplicate_item_id":  "Elk item moet een unieke id hebben.",
		"error.validation.too_many_items":     "Te veel items; het maximum is %d.",
		"error.validation.missing_item_price": "Elk item heeft een prijs nodig.",

		"match.perfect.label":       "Perfecte Match",
		"match.partial.label":       "Best Mogelijk",
		"match.no_solution.label":   "Geen Oplossing",
		"match.perfect.summary":     "Met precies deze items blijft er %s op je kaart over.",
		"match.partial.summary":     "Dit is de dichtstbijzijnde combinatie. Er blijft nog %s op je kaart.",
		"match.no_solution.summary": "Geen enkel item past binnen je saldo. Probeer kleinere items toe te voegen.",

		"report.item":      "ARTIKEL",
		"report.quantity":  "AANTAL",
		"report.unit":      "STUKPRIJS",
		"report.total":     "TOTAAL",
		"report.budget":    "Saldo",
		"report.spent":     "Besteed",
		"report.remaining": "Resterend",
	},
}
