package config

import (
    "fmt"
    "log"
    "strings"

    "github.com/spf13/viper"
)

type Config struct {
    Server struct {
        Port     string
        LogLevel string
    }
    OpenAI struct {
        APIKey          string
        BaseURL         string
        ChatModel       string
        TranscribeModel string
        SpeechModel     string
        Voice           string
    }
    Interview struct {
        MaxMessages    int
        MaxSpeechChars int
    }
    Archive struct {
        Dir string
    }
}

func Load() Config {
    v := viper.New()
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    // Defaults
    v.SetDefault("server.port", 8080)
    v.SetDefault("server.log_level", "info")

    v.SetDefault("openai.base_url", "https://api.openai.com/v1")
    v.SetDefault("openai.chat_model", "gpt-4o-mini")
    v.SetDefault("openai.transcribe_model", "whisper-1")
    v.SetDefault("openai.speech_model", "tts-1")
    v.SetDefault("openai.voice", "alloy")

    v.SetDefault("interview.max_messages", 12)
    v.SetDefault("interview.max_speech_chars", 5000)

    v.SetDefault("archive.dir", "data/interviews")

    // Map envs
    v.BindEnv("server.port", "PORT")
    v.BindEnv("server.log_level", "LOG_LEVEL")

    v.BindEnv("openai.api_key", "OPENAI_API_KEY")
    v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
    v.BindEnv("openai.chat_model", "OPENAI_CHAT_MODEL")
    v.BindEnv("openai.transcribe_model", "OPENAI_TRANSCRIBE_MODEL")
    v.BindEnv("openai.speech_model", "OPENAI_SPEECH_MODEL")
    v.BindEnv("openai.voice", "OPENAI_VOICE")

    v.BindEnv("interview.max_messages", "INTERVIEW_MAX_MESSAGES")
    v.BindEnv("interview.max_speech_chars", "INTERVIEW_MAX_SPEECH_CHARS")

    v.BindEnv("archive.dir", "ARCHIVE_DIR")

    var c Config
    c.Server.Port = toString(v.Get("server.port"))
    c.Server.LogLevel = v.GetString("server.log_level")

    c.OpenAI.APIKey = v.GetString("openai.api_key")
    c.OpenAI.BaseURL = v.GetString("openai.base_url")
    c.OpenAI.ChatModel = v.GetString("openai.chat_model")
    c.OpenAI.TranscribeModel = v.GetString("openai.transcribe_model")
    c.OpenAI.SpeechModel = v.GetString("openai.speech_model")
    c.OpenAI.Voice = v.GetString("openai.voice")

    c.Interview.MaxMessages = v.GetInt("interview.max_messages")
    c.Interview.MaxSpeechChars = v.GetInt("interview.max_speech_chars")

    c.Archive.Dir = v.GetString("archive.dir")

    log.Printf("config loaded: port=%s chat_model=%s archive_dir=%s", c.Server.Port, c.OpenAI.ChatModel, c.Archive.Dir)
    return c
}

func toString(v any) string { return fmt.Sprint(v) }
