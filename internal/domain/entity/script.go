package entity

import "strings"

// Script письменность, для которой есть своя модель
type Script string

const (
	ScriptJapanese Script = "japanese" // японский (Kuzushiji-49)
	ScriptKorean   Script = "korean"   // корейский
	ScriptRussian  Script = "russian"  // русский
)

// Scripts возвращает все поддерживаемые письменности в фиксированном порядке.
func Scripts() []Script {
	return []Script{ScriptJapanese, ScriptKorean, ScriptRussian}
}

// ParseScript разбирает название письменности. Регистр и ведущий "/" не важны,
// принимаются короткие коды ja, ko, ru.
func ParseScript(s string) (Script, error) {
	name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "/")))
	switch name {
	case "japanese", "ja", "jp":
		return ScriptJapanese, nil
	case "korean", "ko", "kr":
		return ScriptKorean, nil
	case "russian", "ru":
		return ScriptRussian, nil
	}
	return "", Errorf(KindUnknownScript, "parse script", "%q", s)
}

func (s Script) String() string {
	return string(s)
}
