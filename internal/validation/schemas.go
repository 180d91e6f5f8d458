package validation

import "tactical-server/internal/models"

// Entity schemas. Create validation uses the schema as declared; update
// validation applies the same schema in partial mode.

var UserSchema = Schema{
	Entity: "user",
	Fields: map[string]Field{
		"email":     {Kind: String, Required: true, Email: true, Column: "email"},
		"username":  {Kind: String, Required: true, MinLen: 3, Column: "username"},
		"password":  {Kind: String, Required: true, MinLen: 6, Column: "password"},
		"role":      {Kind: String, Enum: models.UserRoles, Default: models.RoleViewer, Column: "role"},
		"avatar":    {Kind: String, Column: "avatar"},
		"isActive":  {Kind: Bool, Default: true, Column: "is_active"},
		"lastLogin": {Kind: Time, Column: "last_login"},
	},
}

var AgentSchema = Schema{
	Entity: "agent",
	Fields: map[string]Field{
		"agentId":        {Kind: String, Required: true, Column: "agent_id"},
		"codename":       {Kind: String, Required: true, Column: "codename"},
		"realName":       {Kind: String, Column: "real_name"},
		"status":         {Kind: String, Enum: models.AgentStatuses, Default: models.AgentStandby, Column: "status"},
		"location":       {Kind: String, Column: "location"},
		"riskLevel":      {Kind: String, Enum: models.RiskLevels, Default: models.RiskLow, Column: "risk_level"},
		"missionCount":   {Kind: Int, Default: 0, Min: minOf(0), Column: "mission_count"},
		"lastSeen":       {Kind: Time, Column: "last_seen"},
		"skills":         {Kind: List, Required: true, Column: "skills"},
		"clearanceLevel": {Kind: Int, Default: 1, Min: minOf(1), Max: maxOf(10), Column: "clearance_level"},
		"isActive":       {Kind: Bool, Default: true, Column: "is_active"},
	},
}

var OperationSchema = Schema{
	Entity: "operation",
	Fields: map[string]Field{
		"operationId":    {Kind: String, Required: true, Column: "operation_id"},
		"name":           {Kind: String, Required: true, Column: "name"},
		"description":    {Kind: String, Required: true, Column: "description"},
		"status":         {Kind: String, Enum: models.OperationStatuses, Default: models.OpPlanning, Column: "status"},
		"riskLevel":      {Kind: String, Enum: models.RiskLevels, Default: models.RiskLow, Column: "risk_level"},
		"location":       {Kind: String, Column: "location"},
		"startDate":      {Kind: Time, Column: "start_date"},
		"endDate":        {Kind: Time, Column: "end_date"},
		"plannedEndDate": {Kind: Time, Column: "planned_end_date"},
		"briefing":       {Kind: String, Column: "briefing"},
		"objectives":     {Kind: List, Required: true, Column: "objectives"},
		"isActive":       {Kind: Bool, Default: true, Column: "is_active"},
	},
}

var AssignmentSchema = Schema{
	Entity: "operation_agent",
	Fields: map[string]Field{
		"agent":     {Kind: String, Required: true},
		"operation": {Kind: String},
		"role":      {Kind: String, Column: "role"},
	},
}

var ReportSchema = Schema{
	Entity: "intelligence_report",
	Fields: map[string]Field{
		"reportId":       {Kind: String, Required: true, Column: "report_id"},
		"title":          {Kind: String, Required: true, Column: "title"},
		"description":    {Kind: String, Column: "description"},
		"content":        {Kind: String, Required: true, Column: "content"},
		"classification": {Kind: String, Enum: models.Classifications, Default: models.ClassConfidential, Column: "classification"},
		"type":           {Kind: String, Enum: models.IntelTypes, Default: models.IntelHumint, Column: "type"},
		"location":       {Kind: String, Column: "location"},
		"tags":           {Kind: List, Required: true, Column: "tags"},
		"sourceId":       {Kind: UUID, Column: "source_id"},
		"operationId":    {Kind: UUID, Column: "operation_id"},
		"threatLevel":    {Kind: String, Enum: models.RiskLevels, Default: models.RiskLow, Column: "threat_level"},
		"isActive":       {Kind: Bool, Default: true, Column: "is_active"},
		"publishedAt":    {Kind: Time, Column: "published_at"},
	},
}

var ComponentSchema = Schema{
	Entity: "system_component",
	Fields: map[string]Field{
		"name":         {Kind: String, Required: true, Column: "name"},
		"role":         {Kind: String, Required: true, Column: "role"},
		"status":       {Kind: String, Enum: models.SystemStatuses, Default: models.SystemOnline, Column: "status"},
		"location":     {Kind: String, Column: "location"},
		"health":       {Kind: Float, Default: float64(100), Min: minOf(0), Max: maxOf(100), Column: "health"},
		"cpuUsage":     {Kind: Float, Default: float64(0), Min: minOf(0), Max: maxOf(100), Column: "cpu_usage"},
		"memoryUsage":  {Kind: Float, Default: float64(0), Min: minOf(0), Max: maxOf(100), Column: "memory_usage"},
		"storageUsage": {Kind: Float, Default: float64(0), Min: minOf(0), Max: maxOf(100), Column: "storage_usage"},
		"uptime":       {Kind: Float, Default: float64(0), Min: minOf(0), Column: "uptime"},
		"lastCheck":    {Kind: Time, Column: "last_check"},
		"isActive":     {Kind: Bool, Default: true, Column: "is_active"},
	},
}

var ActivityLogSchema = Schema{
	Entity: "activity_log",
	Fields: map[string]Field{
		"type":        {Kind: String, Required: true, Enum: models.ActivityTypes, Column: "type"},
		"message":     {Kind: String, Required: true, Column: "message"},
		"details":     {Kind: Object, Column: "details"},
		"userId":      {Kind: UUID, Column: "user_id"},
		"agentId":     {Kind: UUID, Column: "agent_id"},
		"operationId": {Kind: UUID, Column: "operation_id"},
		"reportId":    {Kind: UUID, Column: "report_id"},
		"systemId":    {Kind: UUID, Column: "system_id"},
		"timestamp":   {Kind: Time, Column: "timestamp"},
	},
}

var ChatMessageSchema = Schema{
	Entity: "chat_message",
	Fields: map[string]Field{
		"channelId":   {Kind: String, Required: true, Column: "channel_id"},
		"senderId":    {Kind: UUID, Column: "sender_id"},
		"agentId":     {Kind: UUID, Column: "agent_id"},
		"handle":      {Kind: String, Required: true, Column: "handle"},
		"message":     {Kind: String, Required: true, Column: "message"},
		"isEncrypted": {Kind: Bool, Default: true, Column: "is_encrypted"},
		"keyLocked":   {Kind: Bool, Default: true, Column: "key_locked"},
		"isActive":    {Kind: Bool, Default: true, Column: "is_active"},
		"timestamp":   {Kind: Time, Column: "timestamp"},
	},
}
