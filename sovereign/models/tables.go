package models

// Sheet tab names. The spreadsheet is the system of record; these names and
// the header strings below are load-bearing constants.
const (
	TableSectors       = "Sectors"
	TableQuests        = "Quests"
	TableQuestLog      = "Quest_Log"
	TableBadges        = "Badges"
	TableUsers         = "Users"
	TableCommandCenter = "Command_Center"
	TableDefinitions   = "Definitions"
)

// Sectors sheet headers.
const (
	HeaderSector             = "Sector"
	HeaderBoss               = "Boss"
	HeaderMinion             = "Minion"
	HeaderStatus             = "Status"
	HeaderImpact             = "Impact"
	HeaderIntelligence       = "Intelligence"
	HeaderStamina            = "Stamina"
	HeaderTempo              = "Tempo"
	HeaderReputation         = "Reputation"
	HeaderSubject            = "Subject"
	HeaderRecurring          = "Recurring"
	HeaderSurvival           = "Survival Mode"
	HeaderPrerequisite       = "Locked for what?"
	HeaderQuestStatus        = "Quest Status"
	HeaderDateAdded          = "Date Added"
	HeaderDateQuestAdded     = "Date Quest Added"
	HeaderDateQuestCompleted = "Date Quest Completed"
)

// Quests sheet headers.
const (
	HeaderQuestID       = "Quest ID"
	HeaderProofType     = "Proof Type"
	HeaderProofLink     = "Proof Link"
	HeaderSuggestedTask = "Suggested Task"
	HeaderDateCompleted = "Date Completed"
	HeaderDateResolved  = "Date Resolved"
	HeaderFeedback      = "Feedback"
	HeaderDueDate       = "Due Date"
	HeaderReflection    = "Reflection"
	HeaderTimeSpent     = "Time Spent"
)

// Quest_Log, Badges, Users and Command_Center headers.
const (
	HeaderDate         = "Date"
	HeaderNote         = "Note"
	HeaderBadgeID      = "Badge ID"
	HeaderCategory     = "Category"
	HeaderName         = "Name"
	HeaderDateEarned   = "Date Earned"
	HeaderRole         = "Role"
	HeaderToken        = "Token"
	HeaderStat         = "Stat"
	HeaderCurrentLevel = "Current Level"
	HeaderTotalXP      = "Total XP"
	HeaderTerm         = "Term"
	HeaderDefinition   = "Definition"
)

// Expected header sets, in canonical order, used by schema migration. The
// migration never reorders or removes live headers, it only appends the
// ones that are missing.
var (
	SectorsHeaders = []string{
		HeaderSector, HeaderBoss, HeaderMinion, HeaderStatus, HeaderImpact,
		HeaderIntelligence, HeaderStamina, HeaderTempo, HeaderReputation,
		HeaderSubject, HeaderRecurring, HeaderSurvival, HeaderPrerequisite,
		HeaderQuestStatus, HeaderDateAdded, HeaderDateQuestAdded,
		HeaderDateQuestCompleted,
	}
	QuestsHeaders = []string{
		HeaderQuestID, HeaderSector, HeaderBoss, HeaderMinion, HeaderStatus,
		HeaderProofType, HeaderProofLink, HeaderSuggestedTask, HeaderDateAdded,
		HeaderDateCompleted, HeaderDateResolved, HeaderFeedback, HeaderDueDate,
		HeaderSubject, HeaderRecurring, HeaderReflection, HeaderTimeSpent,
	}
	QuestLogHeaders      = []string{HeaderQuestID, HeaderDate, HeaderNote, HeaderTimeSpent}
	BadgesHeaders        = []string{HeaderBadgeID, HeaderCategory, HeaderName, HeaderDateEarned}
	UsersHeaders         = []string{HeaderName, HeaderRole, HeaderToken}
	CommandCenterHeaders = []string{HeaderStat, HeaderCurrentLevel, HeaderTotalXP}
	DefinitionsHeaders   = []string{HeaderTerm, HeaderDefinition}
)

// DateFormat is how every date cell is written. Streak computation and the
// weekly digest parse cells back with the same layout.
const DateFormat = "2006-01-02"
