package model

import (
	"encoding/json"
	"fmt"
)

// createOrReplace is the wire shape of the apply script: one idempotent
// command whose payload is the full serialized model. The whole model goes
// in one command because per-object scripting cannot order inter-object
// references reliably.
type createOrReplace struct {
	CreateOrReplace struct {
		Object struct {
			Database string `json:"database"`
		} `json:"object"`
		Database struct {
			Name  string `json:"name"`
			Model *Model `json:"model"`
		} `json:"database"`
	} `json:"createOrReplace"`
}

// Script serializes the model into the single create-or-replace apply
// script targeting the named database.
func (m *Model) Script(databaseName string) (string, error) {
	var cmd createOrReplace
	cmd.CreateOrReplace.Object.Database = databaseName
	cmd.CreateOrReplace.Database.Name = databaseName
	cmd.CreateOrReplace.Database.Model = m

	data, err := json.MarshalIndent(&cmd, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize model %q: %w", m.Name, err)
	}
	return string(data), nil
}

// RewriteDatabaseName returns the script with its target database renamed.
// Consumers writing the script to a project artifact use this without
// reinterpreting the model payload.
func RewriteDatabaseName(script, newName string) (string, error) {
	var cmd createOrReplace
	if err := json.Unmarshal([]byte(script), &cmd); err != nil {
		return "", fmt.Errorf("failed to parse apply script: %w", err)
	}
	cmd.CreateOrReplace.Object.Database = newName
	cmd.CreateOrReplace.Database.Name = newName

	data, err := json.MarshalIndent(&cmd, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize apply script: %w", err)
	}
	return string(data), nil
}
