package commands

import (
	"GiftHunt/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage — аргументы не подошли, диспетчер покажет usage команды.
var ErrUsage = errors.New("usage")

// Разделы справки.
const (
	SectionAccount   = "Account"
	SectionWishlists = "Wishlists"
	SectionGuests    = "Guests"
)

var sectionOrder = []string{SectionAccount, SectionWishlists, SectionGuests}

// Command — подкоманда CLI.
type Command interface {
	Name() string
	Description() string
	// Usage — строка вида "invite <wishlist-id> <email>".
	Usage() string
	// Run получает аргументы без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// sections — раздел справки для каждой команды; без раздела команда попадает в Other.
var sections = map[string]string{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// RegisterCmd добавляет команду в реестр; вызывается из init() файла команды.
func RegisterCmd(cmd Command, section ...string) {
	registry[cmd.Name()] = cmd
	if len(section) > 0 {
		sections[cmd.Name()] = section[0]
	}
}

func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// BinaryName — имя исполняемого файла клиента.
const BinaryName = "ghcli"

// FormatVersion — вывод флага --version.
func FormatVersion(version, buildDate string) string {
	return fmt.Sprintf("%s (GiftHunt CLI) %s, built %s\n", BinaryName, version, buildDate)
}

// FormatGlobalUsage собирает справку по всем командам, сгруппированную по разделам.
func FormatGlobalUsage() string {
	lines := []string{
		"GiftHunt CLI",
		"",
		"Usage:",
		"  " + BinaryName + " [--base-url <host:port>] [--token-file <path>] <command> [args]",
	}

	bySection := map[string][]Command{}
	for _, c := range List() {
		s, ok := sections[c.Name()]
		if !ok {
			s = "Other"
		}
		bySection[s] = append(bySection[s], c)
	}
	for _, s := range append(sectionOrder, "Other") {
		cmds := bySection[s]
		if len(cmds) == 0 {
			continue
		}
		lines = append(lines, "", s+":")
		for _, c := range cmds {
			lines = append(lines, fmt.Sprintf("  %-44s %s", c.Usage(), c.Description()))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
