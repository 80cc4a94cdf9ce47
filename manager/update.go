package manager

import "github.com/modelserving/tracing/tracesetting"

// UpdateTraceSetting applies upd to the global setting (modelName == "")
// or to modelName's per-model setting, computing the new effective
// setting against the correct fallback and installing it atomically.
//
// A global update additionally re-applies an empty Update to every model
// currently in fallback_used_models, so models that inherit part of their
// configuration from the global observe the change immediately. The
// pre-update membership is snapshotted before iterating, so a model
// dropping out of (or into) the fallback set mid-update never disturbs the
// re-propagation loop.
func (m *TraceManager) UpdateTraceSetting(modelName string, upd tracesetting.Update) error {
	m.wMu.Lock()
	defer m.wMu.Unlock()

	if modelName == "" {
		affected := m.fallbackUsedModelsSnapshot()

		if err := m.updateGlobalLocked(upd); err != nil {
			return err
		}

		for _, model := range affected {
			if err := m.updateModelLocked(model, tracesetting.Update{}); err != nil {
				m.logger.Error("manager: re-propagating global update to model", model, "failed:", err)
			}
		}
		return nil
	}

	return m.updateModelLocked(modelName, upd)
}

func (m *TraceManager) updateGlobalLocked(upd tracesetting.Update) error {
	m.rMu.RLock()
	current := m.globalSetting
	m.rMu.RUnlock()

	merged, err := tracesetting.Merge(current, m.globalDefault, upd, "", m.recorder, m.resolveFile)
	if err != nil {
		return err
	}

	m.rMu.Lock()
	m.globalSetting = merged
	m.rMu.Unlock()
	return nil
}

func (m *TraceManager) updateModelLocked(modelName string, upd tracesetting.Update) error {
	m.rMu.RLock()
	current := m.modelSettings[modelName]
	fallback := m.globalSetting
	m.rMu.RUnlock()

	merged, err := tracesetting.Merge(current, fallback, upd, modelName, m.recorder, m.resolveFile)
	if err != nil {
		return err
	}

	specified, total := merged.FallbackFieldsSpecified()

	m.rMu.Lock()
	defer m.rMu.Unlock()

	switch specified {
	case total:
		// Fully specified: no longer inherits from the global, but keeps
		// its own per-model entry.
		delete(m.fallbackUsedModels, modelName)
		m.modelSettings[modelName] = merged
	case 0:
		// Nothing specified: reverts entirely to the global.
		delete(m.fallbackUsedModels, modelName)
		delete(m.modelSettings, modelName)
	default:
		m.fallbackUsedModels[modelName] = struct{}{}
		m.modelSettings[modelName] = merged
	}

	return nil
}

// fallbackUsedModelsSnapshot copies the current fallback_used_models
// membership under a brief read lock.
func (m *TraceManager) fallbackUsedModelsSnapshot() []string {
	m.rMu.RLock()
	defer m.rMu.RUnlock()

	models := make([]string, 0, len(m.fallbackUsedModels))
	for model := range m.fallbackUsedModels {
		models = append(models, model)
	}
	return models
}
