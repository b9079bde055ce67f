package handler

import (
	"sync"
	"time"

	"orfoepiya/internal/config"
	"orfoepiya/internal/domain"
	"orfoepiya/internal/drill"
	"orfoepiya/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// wordsLoadTimeout bounds a single word list load
const wordsLoadTimeout = 10 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	authService  *service.AuthService
	statsService *service.StatsService
	words        drill.WordSource
	statsWriter  drill.StatsWriter
	drillCfg     config.DrillConfig
	logger       *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	sessions *sessionStore

	// Per-user locks serialize callbacks of one chat
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	statsService *service.StatsService,
	wordService *service.WordService,
	drillCfg config.DrillConfig,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:           bot,
		authService:   authService,
		statsService:  statsService,
		drillCfg:      drillCfg,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
		sessions:      newSessionStore(),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
	// Typed nils must not end up inside the interfaces
	if wordService != nil {
		h.words = wordService
	}
	if statsService != nil {
		h.statsWriter = statsService
	}
	return h
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnNext, h.handleNext)
	h.bot.Handle(&btnRestart, h.handleRestart)
	h.bot.Handle(&btnRetry, h.handleRetry)
	h.bot.Handle(&btnDashboard, h.handleDashboard)
	h.bot.Handle(&btnLogout, h.handleLogout)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state and forgets the learner
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// IsLoggedIn reports whether the chat has a learner
func (h *Handler) IsLoggedIn(userID int64) bool {
	return h.GetState(userID).User != nil
}

// IsAwaitingNickname reports whether the next text is read as a nickname
func (h *Handler) IsAwaitingNickname(userID int64) bool {
	return h.GetState(userID).State == domain.StateWaitingNickname
}

// PromptNickname asks the chat for a nickname
func (h *Handler) PromptNickname(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingNickname})
	return c.Send(nicknamePrompt)
}

// lockUser acquires the callback lock of userID and returns its release
func (h *Handler) lockUser(userID int64) func() {
	h.callbackMux.Lock()
	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	h.callbackMux.Unlock()

	lock.Lock()
	return lock.Unlock
}

const nicknamePrompt = "👋 Привет! Это тренажёр ударений.\n\nВведите никнейм, чтобы войти:"

// Inline keyboard buttons
var (
	btnNext = tele.Btn{
		Unique: "next",
		Text:   "Следующее слово →",
	}
	btnRestart = tele.Btn{
		Unique: "restart",
		Text:   "🔄 Сброс",
	}
	btnRetry = tele.Btn{
		Unique: "retry",
		Text:   "🔁 Повторить",
	}
	btnDashboard = tele.Btn{
		Unique: "dashboard",
		Text:   "🏠 В меню",
	}
	btnLogout = tele.Btn{
		Unique: "logout",
		Text:   "🚪 Выход",
	}
)
