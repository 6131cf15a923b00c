package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/talkpad/talkpad/internal/backend"
	"github.com/talkpad/talkpad/internal/data/dispatcher"
	"github.com/talkpad/talkpad/internal/focus"
	"github.com/talkpad/talkpad/internal/nav/grid"
	"github.com/talkpad/talkpad/internal/nav/keyboard"
	"github.com/talkpad/talkpad/internal/nav/list"
	"github.com/talkpad/talkpad/internal/notify"
	"github.com/talkpad/talkpad/internal/state"
	"github.com/talkpad/talkpad/internal/store"
	"github.com/talkpad/talkpad/internal/theme"
	"github.com/talkpad/talkpad/internal/ui/command"
)

// Screen is the top-level page shown by the model.
type Screen int

const (
	ScreenBoard Screen = iota
	ScreenChat
)

func (s Screen) String() string {
	if s == ScreenChat {
		return "chat"
	}
	return "board"
}

type composeTarget int

const (
	composeMessage composeTarget = iota
	// composeField edits one field of the contact form.
	composeField
)

type modalKind int

const (
	modalNone modalKind = iota
	modalSettings
	modalContact
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	infoTTL       = 4 * time.Second
)

type msgHandler func(tea.Msg) tea.Cmd

// Store is the persistence the UI writes through.
type Store interface {
	Messages(ctx context.Context, contactID int64) ([]store.Message, error)
	AddMessage(ctx context.Context, contactID int64, content string, dir store.Direction) (store.Message, error)
	CreateContact(ctx context.Context, phone, name string) (store.Contact, error)
	UpdateContact(ctx context.Context, c store.Contact) error
	TouchContact(ctx context.Context, id int64) error
	SetLastSelectedContact(ctx context.Context, id int64) error
	SaveSettings(ctx context.Context, in store.Settings) error
}

// Sender delivers outgoing SMS.
type Sender interface {
	Enabled() bool
	Send(ctx context.Context, phone, message string) error
}

// Options configure a Model.
type Options struct {
	Width            int
	Height           int
	ExtendedKeyboard bool
	// Navigation overrides the stored navigation mode when set.
	Navigation string
	Settings   store.Settings
	Store      Store
	Gateway    Sender
	Notifier   *notify.Notifier
	Watcher    *backend.Watcher
	Bus        *command.Bus
}

// Model implements the Bubble Tea model for the talkpad terminal client.
type Model struct {
	screen      Screen
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	styles      *theme.Styles

	broker      *focus.Broker
	selector    *focus.Selector
	unsubscribe func()

	board    *grid.BoardNavigator
	topbar   *list.Navigator
	sidebar  *list.Navigator
	settings *list.Navigator
	keyboard *keyboard.Keyboard
	messages viewport.Model
	compose  composeTarget
	modal    modalKind
	form     *contactForm
	hits     hitMap

	contacts     state.ContactStore
	conversation state.ConversationStore
	prefs        state.SettingsStore
	dispatcher   *dispatcher.Dispatcher

	store              Store
	gateway            Sender
	notifier           *notify.Notifier
	backend            *backend.Watcher
	backendState       map[backend.Kind]error
	backendLastErr     string
	bus                *command.Bus
	navigationOverride string

	handlers map[reflect.Type]msgHandler
	// pending collects commands queued by navigator callbacks, which run
	// synchronously and cannot return a tea.Cmd themselves.
	pending []tea.Cmd
	now     func() time.Time
}

// NewModel initialises the UI on the communication board.
func NewModel(opts Options) *Model {
	if opts.Settings.Theme == "" && opts.Settings.NavigationMode == "" {
		opts.Settings = store.DefaultSettings()
	}
	contacts := state.NewContactStore()
	conversation := state.NewConversationStore()
	prefs := state.NewSettingsStore(opts.Settings)
	bus := opts.Bus
	if bus == nil {
		bus = command.New(0)
	}
	m := &Model{
		screen:             ScreenBoard,
		broker:             focus.NewBroker(),
		contacts:           contacts,
		conversation:       conversation,
		prefs:              prefs,
		dispatcher:         dispatcher.New(contacts, conversation, prefs),
		store:              opts.Store,
		gateway:            opts.Gateway,
		notifier:           opts.Notifier,
		backend:            opts.Watcher,
		backendState:       map[backend.Kind]error{},
		bus:                bus,
		navigationOverride: opts.Navigation,
		now:                time.Now,
	}
	m.width, m.height = defaultWidth, defaultHeight
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.selector = focus.NewSelector(m.broker, chatSections...)
	m.unsubscribe = m.broker.Subscribe(m.onFocusChange)
	m.board = grid.NewBoardNavigator(grid.NewBoard(grid.DefaultBoardCols, grid.DefaultBoardRows, grid.BindActions(grid.DefaultTiles(), m.onTile)))
	m.topbar = list.NewWrapping("topbar", m.topbarItems())
	m.sidebar = list.New("sidebar", nil)
	m.settings = list.NewWrapping("settings", nil)
	m.keyboard = keyboard.New(keyboard.Default(opts.ExtendedKeyboard), nil, keyboard.Callbacks{
		OnSubmit: m.submit,
		OnCancel: m.back,
		OnScroll: m.scrollMessages,
	})
	m.messages = viewport.New(0, 0)
	m.applySettings()
	m.resize()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if last := m.prefs.Settings().LastSelectedContact; last != nil {
		m.contacts.SetSelected(*last)
		if cmd := m.loadConversationCmd(*last); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):            m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):     m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):          m.handleMouseMsg,
		reflect.TypeOf(GamepadMsg{}):            m.handleGamepadMsg,
		reflect.TypeOf(backendEventMsg{}):       m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):        m.handleBackendDoneMsg,
		reflect.TypeOf(conversationLoadedMsg{}): m.handleConversationLoadedMsg,
		reflect.TypeOf(messageSentMsg{}):        m.handleMessageSentMsg,
		reflect.TypeOf(contactCreatedMsg{}):     m.handleContactCreatedMsg,
		reflect.TypeOf(contactUpdatedMsg{}):     m.handleContactUpdatedMsg,
		reflect.TypeOf(settingsSavedMsg{}):      m.handleSettingsSavedMsg,
		reflect.TypeOf(command.ErrorMsg{}):      m.handleCommandErrorMsg,
		reflect.TypeOf(notificationFailedMsg{}): m.handleNotificationFailedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(m.pending) > 0 {
		cmds = append(cmds, m.pending...)
		m.pending = nil
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Close releases the focus subscription.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Screen returns the page on display.
func (m *Model) Screen() Screen { return m.screen }

// Focus returns the focused chat region.
func (m *Model) Focus() focus.Section { return m.broker.Current() }

// Broker exposes the focus broker.
func (m *Model) Broker() *focus.Broker { return m.broker }

// Board exposes the board navigator.
func (m *Model) Board() *grid.BoardNavigator { return m.board }

// Keyboard exposes the on-screen keyboard.
func (m *Model) Keyboard() *keyboard.Keyboard { return m.keyboard }

// Sidebar exposes the contact list navigator.
func (m *Model) Sidebar() *list.Navigator { return m.sidebar }

// Settings returns the effective settings.
func (m *Model) Settings() store.Settings { return m.prefs.Settings() }

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.resize()
	return nil
}

func (m *Model) setInfo(text string) {
	m.infoMsg = text
	m.infoExpire = m.now().Add(infoTTL)
}

func (m *Model) currentInfo() string {
	if m.infoMsg == "" || m.now().After(m.infoExpire) {
		return ""
	}
	return m.infoMsg
}

func (m *Model) setError(text string) {
	m.errMsg = text
}

func (m *Model) clearStatus() {
	m.errMsg = ""
	m.infoMsg = ""
}
