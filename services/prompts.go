package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultGeneratePrompt = `Ты помощник, который превращает описание процесса в пошаговую схему.
Разбей описание пользователя на короткие последовательные шаги.
Ответь строго в формате:
Шаг 1: <короткое действие>
Шаг 2: <короткое действие>
Не добавляй ничего, кроме строк с шагами.`

const defaultChatPrompt = `Ты помощник, который обсуждает процесс с пользователем и ведёт его схему.
Отвечай кратко, и в конце каждого ответа перечисли актуальные шаги процесса строго в формате:
Шаг 1: <короткое действие>
Шаг 2: <короткое действие>
Учитывай весь предыдущий диалог.`

// Prompts are the system prompts for the two generation modes. Both can be
// overridden from a YAML file, missing fields keep the defaults.
type Prompts struct {
	Generate string `yaml:"generate"`
	Chat     string `yaml:"chat"`
}

func DefaultPrompts() *Prompts {
	return &Prompts{
		Generate: defaultGeneratePrompt,
		Chat:     defaultChatPrompt,
	}
}

func LoadPrompts(path string) (*Prompts, error) {
	prompts := DefaultPrompts()
	if path == "" {
		return prompts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}
	if err := yaml.Unmarshal(data, prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}
	return prompts, nil
}
