package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONB type for structured detail payloads
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONB)
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONB", value)
	}
}

// StringList is an ordered list of strings stored as a JSON-encoded scalar,
// so the same column type works on Postgres and the sqlite test driver.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// User roles
const (
	RoleAdmin    = "ADMIN"
	RoleAnalyst  = "ANALYST"
	RoleOperator = "OPERATOR"
	RoleViewer   = "VIEWER"
)

// Agent statuses
const (
	AgentActive      = "ACTIVE"
	AgentStandby     = "STANDBY"
	AgentCompromised = "COMPROMISED"
	AgentTraining    = "TRAINING"
	AgentUndercover  = "UNDERCOVER"
)

// Risk levels, shared by Agent, Operation and IntelligenceReport
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// Operation statuses
const (
	OpPlanning    = "PLANNING"
	OpActive      = "ACTIVE"
	OpCompleted   = "COMPLETED"
	OpCompromised = "COMPROMISED"
	OpSuspended   = "SUSPENDED"
)

// Report classifications
const (
	ClassConfidential = "CONFIDENTIAL"
	ClassSecret       = "SECRET"
	ClassTopSecret    = "TOP_SECRET"
)

// Intelligence types
const (
	IntelHumint     = "HUMINT"
	IntelSigint     = "SIGINT"
	IntelDiplomatic = "DIPLOMATIC"
	IntelOsint      = "OSINT"
)

// System component statuses
const (
	SystemOnline      = "ONLINE"
	SystemWarning     = "WARNING"
	SystemMaintenance = "MAINTENANCE"
	SystemOffline     = "OFFLINE"
)

// Activity types
const (
	ActivityMissionStart      = "MISSION_START"
	ActivityAgentDeployed     = "AGENT_DEPLOYED"
	ActivityMissionComplete   = "MISSION_COMPLETE"
	ActivityMissionFailed     = "MISSION_FAILED"
	ActivityAgentCompromised  = "AGENT_COMPROMISED"
	ActivitySystemAlert       = "SYSTEM_ALERT"
	ActivityLogin             = "LOGIN"
	ActivityCommunicationLost = "COMMUNICATION_LOST"
)

var (
	UserRoles         = []string{RoleAdmin, RoleAnalyst, RoleOperator, RoleViewer}
	AgentStatuses     = []string{AgentActive, AgentStandby, AgentCompromised, AgentTraining, AgentUndercover}
	RiskLevels        = []string{RiskLow, RiskMedium, RiskHigh, RiskCritical}
	OperationStatuses = []string{OpPlanning, OpActive, OpCompleted, OpCompromised, OpSuspended}
	Classifications   = []string{ClassConfidential, ClassSecret, ClassTopSecret}
	IntelTypes        = []string{IntelHumint, IntelSigint, IntelDiplomatic, IntelOsint}
	SystemStatuses    = []string{SystemOnline, SystemWarning, SystemMaintenance, SystemOffline}
	ActivityTypes     = []string{
		ActivityMissionStart, ActivityAgentDeployed, ActivityMissionComplete,
		ActivityMissionFailed, ActivityAgentCompromised, ActivitySystemAlert,
		ActivityLogin, ActivityCommunicationLost,
	}
)

// User represents a dashboard operator account
type User struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string     `json:"email" gorm:"not null;uniqueIndex;size:255"`
	Username  string     `json:"username" gorm:"not null;uniqueIndex;size:100"`
	Password  string     `json:"-" gorm:"not null;size:255"`
	Role      string     `json:"role" gorm:"default:'VIEWER';size:20;index"`
	Avatar    string     `json:"avatar" gorm:"size:500"`
	IsActive  bool       `json:"is_active" gorm:"default:true;index"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Agent represents a field agent
type Agent struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	AgentID        string     `json:"agent_id" gorm:"not null;uniqueIndex;size:50"`
	Codename       string     `json:"codename" gorm:"not null;uniqueIndex;size:100"`
	RealName       string     `json:"real_name" gorm:"size:255"`
	Status         string     `json:"status" gorm:"default:'STANDBY';size:20;index"`
	Location       string     `json:"location" gorm:"size:255"`
	RiskLevel      string     `json:"risk_level" gorm:"default:'LOW';size:20;index"`
	MissionCount   int        `json:"mission_count" gorm:"default:0"`
	LastSeen       time.Time  `json:"last_seen"`
	Skills         StringList `json:"skills" gorm:"type:text"`
	ClearanceLevel int        `json:"clearance_level" gorm:"default:1"`
	IsActive       bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relationships
	Assignments  []OperationAgent `json:"assignments,omitempty" gorm:"foreignKey:AgentID"`
	ActivityLogs []ActivityLog    `json:"activity_logs,omitempty" gorm:"foreignKey:AgentID"`
	ChatMessages []ChatMessage    `json:"chat_messages,omitempty" gorm:"foreignKey:AgentID"`
}

// Operation represents a tactical operation
type Operation struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	OperationID    string     `json:"operation_id" gorm:"not null;uniqueIndex;size:50"`
	Name           string     `json:"name" gorm:"not null;size:255"`
	Description    string     `json:"description" gorm:"not null;type:text"`
	Status         string     `json:"status" gorm:"default:'PLANNING';size:20;index"`
	RiskLevel      string     `json:"risk_level" gorm:"default:'LOW';size:20;index"`
	Location       string     `json:"location" gorm:"size:255"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	PlannedEndDate *time.Time `json:"planned_end_date"`
	Briefing       string     `json:"briefing" gorm:"type:text"`
	Objectives     StringList `json:"objectives" gorm:"type:text"`
	IsActive       bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relationships
	Assignments  []OperationAgent     `json:"assignments,omitempty" gorm:"foreignKey:OperationID"`
	ActivityLogs []ActivityLog        `json:"activity_logs,omitempty" gorm:"foreignKey:OperationID"`
	Reports      []IntelligenceReport `json:"reports,omitempty" gorm:"foreignKey:OperationID"`
}

// OperationAgent links an agent to an operation with an optional role label.
// At most one row exists per (agent, operation) pair.
type OperationAgent struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AgentID     uuid.UUID `json:"agent_id" gorm:"not null;index;uniqueIndex:idx_operation_agent_pair"`
	OperationID uuid.UUID `json:"operation_id" gorm:"not null;index;uniqueIndex:idx_operation_agent_pair"`
	Role        string    `json:"role" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Agent     Agent     `json:"agent,omitempty" gorm:"foreignKey:AgentID"`
	Operation Operation `json:"operation,omitempty" gorm:"foreignKey:OperationID"`
}

// IntelligenceReport represents a filed intelligence report
type IntelligenceReport struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ReportID       string     `json:"report_id" gorm:"not null;uniqueIndex;size:50"`
	Title          string     `json:"title" gorm:"not null;size:255"`
	Description    string     `json:"description" gorm:"type:text"`
	Content        string     `json:"content" gorm:"not null;type:text"`
	Classification string     `json:"classification" gorm:"default:'CONFIDENTIAL';size:20;index"`
	Type           string     `json:"type" gorm:"default:'HUMINT';size:20;index"`
	Location       string     `json:"location" gorm:"size:255"`
	Tags           StringList `json:"tags" gorm:"type:text"`
	SourceID       *uuid.UUID `json:"source_id" gorm:"type:uuid;index"`
	OperationID    *uuid.UUID `json:"operation_id" gorm:"type:uuid;index"`
	ThreatLevel    string     `json:"threat_level" gorm:"default:'LOW';size:20;index"`
	IsActive       bool       `json:"is_active" gorm:"default:true;index"`
	PublishedAt    time.Time  `json:"published_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relationships
	Source    *Agent     `json:"source,omitempty" gorm:"foreignKey:SourceID"`
	Operation *Operation `json:"operation,omitempty" gorm:"foreignKey:OperationID"`
}

// SystemComponent represents a monitored infrastructure component
type SystemComponent struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"not null;uniqueIndex;size:255"`
	Role         string    `json:"role" gorm:"not null;size:100"`
	Status       string    `json:"status" gorm:"default:'ONLINE';size:20;index"`
	Location     string    `json:"location" gorm:"size:255"`
	Health       float64   `json:"health" gorm:"default:100"`
	CPUUsage     float64   `json:"cpu_usage" gorm:"default:0"`
	MemoryUsage  float64   `json:"memory_usage" gorm:"default:0"`
	StorageUsage float64   `json:"storage_usage" gorm:"default:0"`
	Uptime       float64   `json:"uptime" gorm:"default:0"`
	LastCheck    time.Time `json:"last_check"`
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	ActivityLogs []ActivityLog `json:"activity_logs,omitempty" gorm:"foreignKey:SystemID"`
}

// ActivityLog records a dashboard-visible event. The reference columns are
// optional and never owning: deleting a referenced row nulls them.
type ActivityLog struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Type        string     `json:"type" gorm:"not null;size:30;index"`
	Message     string     `json:"message" gorm:"not null;type:text"`
	Details     JSONB      `json:"details" gorm:"type:jsonb"`
	UserID      *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	AgentID     *uuid.UUID `json:"agent_id" gorm:"type:uuid;index"`
	OperationID *uuid.UUID `json:"operation_id" gorm:"type:uuid;index"`
	ReportID    *uuid.UUID `json:"report_id" gorm:"type:uuid;index"`
	SystemID    *uuid.UUID `json:"system_id" gorm:"type:uuid;index"`
	Timestamp   time.Time  `json:"timestamp" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relationships
	User      *User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Agent     *Agent              `json:"agent,omitempty" gorm:"foreignKey:AgentID"`
	Operation *Operation          `json:"operation,omitempty" gorm:"foreignKey:OperationID"`
	Report    *IntelligenceReport `json:"report,omitempty" gorm:"foreignKey:ReportID"`
	System    *SystemComponent    `json:"system,omitempty" gorm:"foreignKey:SystemID"`
}

// ChatMessage represents a message on a secure channel. SenderID (user) and
// AgentID are mutually exclusive; both nil means a system message.
type ChatMessage struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ChannelID   string     `json:"channel_id" gorm:"not null;size:50;index"`
	SenderID    *uuid.UUID `json:"sender_id" gorm:"type:uuid;index"`
	AgentID     *uuid.UUID `json:"agent_id" gorm:"type:uuid;index"`
	Handle      string     `json:"handle" gorm:"not null;size:100"`
	Message     string     `json:"message" gorm:"not null;type:text"`
	IsEncrypted bool       `json:"is_encrypted" gorm:"default:true"`
	KeyLocked   bool       `json:"key_locked" gorm:"default:true"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	Timestamp   time.Time  `json:"timestamp" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relationships
	Sender *User  `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Agent  *Agent `json:"agent,omitempty" gorm:"foreignKey:AgentID"`
}

// SystemStats is an immutable point-in-time snapshot. Rows are appended by
// the stats service, never updated.
type SystemStats struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TotalAgents         int       `json:"total_agents" gorm:"default:0"`
	ActiveAgents        int       `json:"active_agents" gorm:"default:0"`
	CompromisedAgents   int       `json:"compromised_agents" gorm:"default:0"`
	TrainingAgents      int       `json:"training_agents" gorm:"default:0"`
	TotalOperations     int       `json:"total_operations" gorm:"default:0"`
	ActiveOperations    int       `json:"active_operations" gorm:"default:0"`
	CompletedOperations int       `json:"completed_operations" gorm:"default:0"`
	SystemsOnline       int       `json:"systems_online" gorm:"default:0"`
	TotalSystems        int       `json:"total_systems" gorm:"default:0"`
	Warnings            int       `json:"warnings" gorm:"default:0"`
	AvgUptime           float64   `json:"avg_uptime" gorm:"default:0"`
	SuccessRate         float64   `json:"success_rate" gorm:"default:0"`
	Date                time.Time `json:"date" gorm:"index"`
	CreatedAt           time.Time `json:"created_at"`
}

// Custom table names
func (User) TableName() string               { return "users" }
func (Agent) TableName() string              { return "agents" }
func (Operation) TableName() string          { return "operations" }
func (OperationAgent) TableName() string     { return "operation_agents" }
func (IntelligenceReport) TableName() string { return "intelligence_reports" }
func (SystemComponent) TableName() string    { return "system_components" }
func (ActivityLog) TableName() string        { return "activity_logs" }
func (ChatMessage) TableName() string        { return "chat_messages" }
func (SystemStats) TableName() string        { return "system_stats" }

// BeforeCreate hooks
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (o *Operation) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (oa *OperationAgent) BeforeCreate(tx *gorm.DB) error {
	if oa.ID == uuid.Nil {
		oa.ID = uuid.New()
	}
	return nil
}

func (r *IntelligenceReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (sc *SystemComponent) BeforeCreate(tx *gorm.DB) error {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	return nil
}

func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.New()
	}
	if al.Timestamp.IsZero() {
		al.Timestamp = time.Now().UTC()
	}
	return nil
}

func (cm *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if cm.ID == uuid.Nil {
		cm.ID = uuid.New()
	}
	if cm.Timestamp.IsZero() {
		cm.Timestamp = time.Now().UTC()
	}
	return nil
}

func (ss *SystemStats) BeforeCreate(tx *gorm.DB) error {
	if ss.ID == uuid.Nil {
		ss.ID = uuid.New()
	}
	if ss.Date.IsZero() {
		ss.Date = time.Now().UTC()
	}
	return nil
}

// Helper methods for status checks
func (a *Agent) IsDeployed() bool {
	return a.Status == AgentActive || a.Status == AgentUndercover
}

func (a *Agent) IsCompromised() bool {
	return a.Status == AgentCompromised
}

func (o *Operation) IsRunning() bool {
	return o.Status == OpActive
}

func (o *Operation) IsClosed() bool {
	return o.Status == OpCompleted || o.Status == OpSuspended
}

func (sc *SystemComponent) IsHealthy() bool {
	return sc.Status == SystemOnline && sc.Health >= 90
}

func (cm *ChatMessage) IsSystemMessage() bool {
	return cm.SenderID == nil && cm.AgentID == nil
}
