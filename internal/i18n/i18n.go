// Package i18n resolves user-facing message keys into the request's
// language. Only messages that reach end users are translated; log and
// internal error text stays English.
package i18n

import "fmt"

const defaultLanguage = "en"

var messages = map[string]map[string]string{
	"en": {
		"importer.errors.importHashRequired": "the import hash is required",
		"importer.errors.importHashExistent": "this record was already imported",
		"errors.duplicateField":              "a record with this %s already exists",
		"errors.notFound":                    "record not found",
		"errors.validation":                  "the request is invalid",
		"errors.unauthorized":                "authentication required",
		"errors.forbidden":                   "you do not have access to this tenant",
		"errors.internal":                    "an internal error occurred",
		"auth.errors.invalidCredentials":     "invalid email or password",
	},
	"es": {
		"importer.errors.importHashRequired": "el hash de importación es obligatorio",
		"importer.errors.importHashExistent": "este registro ya fue importado",
		"errors.duplicateField":              "ya existe un registro con este %s",
		"errors.notFound":                    "registro no encontrado",
		"errors.validation":                  "la solicitud no es válida",
		"errors.unauthorized":                "se requiere autenticación",
		"errors.forbidden":                   "no tiene acceso a este inquilino",
		"errors.internal":                    "ocurrió un error interno",
		"auth.errors.invalidCredentials":     "correo o contraseña inválidos",
	},
	"pt-BR": {
		"importer.errors.importHashRequired": "o hash de importação é obrigatório",
		"importer.errors.importHashExistent": "este registro já foi importado",
		"errors.duplicateField":              "já existe um registro com este %s",
		"errors.notFound":                    "registro não encontrado",
		"errors.validation":                  "a solicitação é inválida",
		"errors.unauthorized":                "autenticação necessária",
		"errors.forbidden":                   "você não tem acesso a este locatário",
		"errors.internal":                    "ocorreu um erro interno",
		"auth.errors.invalidCredentials":     "e-mail ou senha inválidos",
	},
}

// Resolve translates key into lang, falling back to English, then to the
// key itself when no translation exists. args feed fmt.Sprintf verbs in the
// message template.
func Resolve(lang, key string, args ...any) string {
	msg, ok := messages[lang][key]
	if !ok {
		msg, ok = messages[defaultLanguage][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Supported reports whether lang has a message table.
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}
