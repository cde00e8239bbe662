// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"strings"

	"github.com/danielhkuo/askflow/models"
)

// Fixed per-language string tables. Localization stops here; the survey
// content itself lives in the question document.

var welcomeText = map[string]string{
	models.LangRU: "Благодарим за интерес к нашему проекту. Сейчас вы пройдёте короткий опрос — это поможет нам лучше понять ваши цели и подобрать для вас максимально подходящий путь обучения.",
	models.LangEN: "Thank you for your interest in our project. Now you will take a short survey — this will help us better understand your goals and find the most suitable learning path for you.",
}

var errorMsg = map[string]string{
	models.LangRU: "Дай ответ более корректно и открыто",
	models.LangEN: "Please answer more clearly and openly",
}

var ageBlockMsg = map[string]string{
	models.LangRU: "Извините, наш сервис только для лиц старше 18 лет. Доступ закрыт.",
	models.LangEN: "Sorry, our service is only for people over 18 years old. Access denied.",
}

var pressStartMsg = map[string]string{
	models.LangRU: "Нажмите кнопку 'СТАРТ'!",
	models.LangEN: "Press the 'START' button!",
}

var overridePrompt = map[string]string{
	models.LangRU: "Пожалуйста, напишите свой вариант (не менее 5 символов):",
	models.LangEN: "Please write your own option (at least 5 characters):",
}

var startToken = map[string]string{
	models.LangRU: "старт",
	models.LangEN: "start",
}

var startButton = map[string]string{
	models.LangRU: "СТАРТ",
	models.LangEN: "START",
}

// defaultFinalPhrase is used when the document carries no closing template.
var defaultFinalPhrase = map[string]string{
	models.LangRU: "Спасибо! Напишите нашему менеджеру {contact_link} для дальнейших инструкций.",
	models.LangEN: "Thank you! Please message our manager {contact_link} for further instructions.",
}

const (
	langPrompt        = "Выберите язык / Select language:"
	langRetryPrompt   = "Пожалуйста, выберите язык / Please select a language:"
	startSurveyPrompt = "Начнем опрос! / Let's start the survey!"
	noSessionPrompt   = "Отправьте /start, чтобы начать. / Send /start to begin."
	defaultContact    = "@manager"
)

func langKeyboard() models.Keyboard {
	return models.SingleColumn("Русский", "English")
}

func startKeyboard(lang string) models.Keyboard {
	return models.SingleColumn(startButton[lang])
}

// resolveLang maps a language selection to a locale code.
func resolveLang(text string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "русский", "рус", "ru":
		return models.LangRU, true
	case "english", "en":
		return models.LangEN, true
	}
	return "", false
}
