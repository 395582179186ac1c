package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"glyphscan/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я распознаю рукописные слова.

📸 Отправьте фото слова и подпишите его названием письменности:
japanese, korean или russian.

📋 Команды:
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Сфотографируйте слово, написанное тёмными чернилами на светлом фоне
2️⃣ Отправьте фото (или картинку файлом) с подписью japanese, korean или russian
3️⃣ Бот пришлёт распознанный текст

💡 Рекомендации:
• Пишите буквы раздельно, не касаясь друг друга
• Снимайте при хорошем освещении`

	msgSendPhoto       = "📸 Пожалуйста, отправьте фото слова с подписью japanese, korean или russian."
	msgUnknownScript   = "❓ Не понял письменность. Подпишите фото: japanese, korean или russian."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Распознаю..."
	msgNoGlyphs        = "🔍 Символы не найдены."
	msgProcessingError = "⚠️ Не удалось распознать изображение. Попробуйте сделать другое фото."
)

// Transcriber распознаёт слово на изображении
type Transcriber interface {
	Transcribe(ctx context.Context, script entity.Script, imageData []byte) (*entity.Transcription, error)
}

// sender отправляет сообщения в чат
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot представляет Telegram-бота. Состояние между сообщениями не хранится:
// письменность берётся из подписи к каждому фото.
type Bot struct {
	api         *tgbotapi.BotAPI
	sender      sender
	download    func(ctx context.Context, fileID string) ([]byte, error)
	transcriber Transcriber
}

// NewBot создаёт нового бота
func NewBot(token string, transcriber Transcriber) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	tl.Log(tl.Notice, palette.BlueBold, "Authorized on Telegram account '%s'", api.Self.UserName)

	b := &Bot{
		api:         api,
		sender:      api,
		transcriber: transcriber,
	}
	b.download = b.downloadFile
	return b, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx.
// Возвращается только после того, как текущее сообщение обработано.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.serve(ctx, updates)
	return nil
}

// serve обрабатывает сообщения по одному, пока не закрыт канал или не отменён ctx.
func (b *Bot) serve(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}

			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	// Обработка изображения
	if fileID, ok := imageFileID(msg); ok {
		b.handleImage(ctx, msg, fileID)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleImage распознаёт слово на присланном изображении
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	script, err := scriptFromCaption(msg.Caption)
	if err != nil {
		b.sendMessage(msg.Chat.ID, msgUnknownScript)
		return
	}

	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.download(ctx, fileID)
	if err != nil {
		tl.Log(tl.Warning, palette.Yellow, "Failed to download file from chat '%s': '%s'", fmt.Sprint(msg.Chat.ID), err.Error())
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	result, err := b.transcriber.Transcribe(ctx, script, imageData)
	if err != nil {
		tl.Log(tl.Warning, palette.Yellow, "Transcription for chat '%s' failed: Kind='%s', Error='%s'",
			fmt.Sprint(msg.Chat.ID), string(entity.KindOf(err)), err.Error())
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.sendMessage(msg.Chat.ID, replyText(result))
}

// scriptFromCaption берёт письменность из первого слова подписи.
func scriptFromCaption(caption string) (entity.Script, error) {
	fields := strings.Fields(caption)
	if len(fields) == 0 {
		return "", entity.Errorf(entity.KindUnknownScript, "caption", "empty caption")
	}
	return entity.ParseScript(fields[0])
}

// imageFileID выбирает фото с максимальным разрешением или документ-картинку.
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

func replyText(result *entity.Transcription) string {
	if result.Text == "" {
		return msgNoGlyphs
	}
	return result.Text
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.sender.Send(msg); err != nil {
		tl.Log(tl.Warning, palette.Yellow, "Failed to send message to chat '%s': '%s'", fmt.Sprint(chatID), err.Error())
	}
}
