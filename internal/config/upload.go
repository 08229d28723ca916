package config

type Upload struct {
	Dir         string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MountPath   string `env:"UPLOAD_MOUNT_PATH" envDefault:"/uploads"`
	MaxFileSize int64  `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"5242880"`
	MaxFiles    int    `env:"UPLOAD_MAX_FILES" envDefault:"5"`
}
