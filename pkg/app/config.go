package app

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Components are registered per configuration section prefix, e.g. all
// [ComSpec.xxx] sections are built by the factory registered for "ComSpec".
// This should be called inside an init() function of the component package.
type NewComponentFunc func(parent Component, name string) Component

var componentRegistry = make(map[string]NewComponentFunc)

func RegisterComponentType(sectionPrefix string, newComponent NewComponentFunc) {
	componentRegistry[sectionPrefix] = newComponent
}

// LoadConfig builds the component tree from an ini configuration file.
// Section names follow the "<Prefix>.<Name>" convention : a container
// group named after the prefix is created under the app, and the
// registered factory for that prefix creates the component inside it.
// A bare "[<Prefix>]" section creates an empty container.
// Every created component has Load called with its section options.
func LoadConfig(path string) (*App, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration : %w", err)
	}
	return buildTree(cfg)
}

// LoadConfigFromBytes is the in-memory variant of [LoadConfig]
func LoadConfigFromBytes(data []byte) (*App, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration : %w", err)
	}
	return buildTree(cfg)
}

func buildTree(cfg *ini.File) (*App, error) {
	appSection := cfg.Section("App")
	appName := appSection.Key("name").MustString("App")
	application := NewApp(appName)
	application.SetPowered(appSection.Key("powered").MustBool(false))

	groups := map[string]*Group{}
	containerFor := func(prefix string) *Group {
		group, ok := groups[prefix]
		if !ok {
			group = NewGroup(application, prefix)
			groups[prefix] = group
		}
		return group
	}

	for _, section := range cfg.Sections() {
		sectionName := section.Name()
		if sectionName == ini.DefaultSection || sectionName == "App" {
			continue
		}
		prefix, name, hasName := strings.Cut(sectionName, ".")
		if !hasName {
			// Bare section, only creates the container
			containerFor(prefix)
			continue
		}
		factory, ok := componentRegistry[prefix]
		if !ok {
			log.Warnf("[CONFIG] unknown section type %v, skipping section %v", prefix, sectionName)
			continue
		}
		component := factory(containerFor(prefix), name)
		if err := component.Load(NewOptions(section.KeysHash())); err != nil {
			return nil, fmt.Errorf("loading %v : %w", sectionName, err)
		}
	}
	return application, nil
}
