package assistantRepository

const (
	queryCreateTrainingSample = `
		INSERT INTO training_samples (
			id, utterance, intent, language, created_at
		) VALUES (
			:id, :utterance, :intent, :language, :created_at
		)
	`

	queryGetTrainingSamplesByLanguage = `
		SELECT
			id, utterance, intent, language, created_at
		FROM training_samples
		WHERE language = :language
		ORDER BY created_at ASC
	`

	queryCountTrainingSamplesByLanguage = `
		SELECT COUNT(*)
		FROM training_samples
		WHERE language = :language
	`

	queryCreateCommandLog = `
		INSERT INTO command_logs (
			id, user_id, text, language, intent,
			response, plugin_used, degraded, created_at
		) VALUES (
			:id, :user_id, :text, :language, :intent,
			:response, :plugin_used, :degraded, :created_at
		)
	`

	queryGetCommandLogsByUserID = `
		SELECT
			id, user_id, text, language, intent,
			response, plugin_used, degraded, created_at
		FROM command_logs
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountCommandLogsByUserID = `
		SELECT COUNT(*)
		FROM command_logs
		WHERE user_id = :user_id
	`
)
