package bsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bslcheck/internal/domain"
)

func TestClassifierMethodStart(t *testing.T) {
	c, err := NewClassifier("")
	require.NoError(t, err)

	tests := []struct {
		line string
		kind domain.MethodKind
		name string
		ok   bool
	}{
		{"Функция Сумма(А, Б) Экспорт", domain.Function, "Сумма", true},
		{"  \tПроцедура При_Открытии(Отказ)", domain.Procedure, "При_Открытии", true},
		{"Процедура Init2()", domain.Procedure, "Init2", true},
		{"Функция", "", "", false},
		{"// Функция Закомментирована()", "", "", false},
		{"КонецФункции", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			kind, name, ok := c.MethodStart(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestClassifierLineKinds(t *testing.T) {
	c, err := NewClassifier("")
	require.NoError(t, err)

	assert.True(t, c.MethodEnd("КонецФункции"))
	assert.True(t, c.MethodEnd("\tКонецПроцедуры // А"))
	assert.False(t, c.MethodEnd("Конец"))

	assert.True(t, c.Return("    Возврат Результат;"))
	assert.False(t, c.Return("// Возврат"))

	assert.True(t, c.Tag("// Метод присутствует в клиентском и серверном модулях."))
	assert.False(t, c.Tag("// Метод присутствует только на клиенте"))

	d, ok := c.Directive("&НаСервереБезКонтекста")
	assert.True(t, ok)
	assert.Equal(t, "НаСервереБезКонтекста", d)

	_, ok = c.Directive("А = Б & В;")
	assert.False(t, ok)
}

func TestClassifierUnicodeIndent(t *testing.T) {
	c, err := NewClassifier("")
	require.NoError(t, err)

	nbsp := "\u00a0"

	kind, name, ok := c.MethodStart(nbsp + "Функция" + nbsp + "Сумма()")
	assert.True(t, ok)
	assert.Equal(t, domain.Function, kind)
	assert.Equal(t, "Сумма", name)

	assert.True(t, c.MethodEnd(nbsp+"КонецФункции"))
	assert.True(t, c.Return(nbsp+nbsp+"Возврат 1;"))

	d, ok := c.Directive(nbsp + "&НаКлиенте")
	assert.True(t, ok)
	assert.Equal(t, "НаКлиенте", d)
}

func TestClassifierCustomTag(t *testing.T) {
	c, err := NewClassifier(`@shared`)
	require.NoError(t, err)
	assert.True(t, c.Tag("// @shared"))
	assert.False(t, c.Tag("// Метод присутствует в клиентском и серверном модулях"))

	_, err = NewClassifier(`(`)
	assert.Error(t, err)
}
