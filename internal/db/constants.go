package db

// SQL query fragments used across multiple functions
const (
	sqlSelectClients = `SELECT id, COALESCE(name, ''), COALESCE(email, ''), created_at, updated_at FROM clients`

	sqlSelectUsage = `
	SELECT u.id, u.client_id, u.date, u.kit_1_usage, u.kit_2_usage, u.total_usage,
		COALESCE(c.name, ''), COALESCE(c.email, '')
	FROM data_usage u
	LEFT JOIN clients c ON c.id = u.client_id`
)
