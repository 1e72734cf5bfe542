package service

import (
	"context"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
)

// File hidrata un fichero adjunto. Un owner ausente o nulo cuenta como payload parcial.
func (h *Hydrator) File(ctx context.Context, raw any) (domain.File, error) {
	return hydrate(ctx, h, domain.KindFile, raw, h.attemptFile)
}

func (h *Hydrator) attemptFile(ctx context.Context, rec payload.Record) (Attempt[domain.File], error) {
	f := readFields(rec)
	dims := f.object("dimensions")
	file := domain.File{
		ID:              f.id("id"),
		Name:            f.str("name"),
		VirtualFolder:   f.num("virtual_folder"),
		FolderType:      f.str("folder_type"),
		TypeID:          f.num("type_id"),
		Size:            f.str("size"),
		SizeByte:        f.num("size_byte"),
		SizeString:      f.str("size_string"),
		Width:           dims.num("width"),
		Height:          dims.num("height"),
		Extension:       f.str("ext"),
		MimeType:        f.str("mime"),
		Base64:          f.str("base_64"),
		Uploaded:        f.num("uploaded"),
		Modified:        f.num("modified"),
		Permission:      f.str("permission"),
		OwnerID:         f.num("owner_id"),
		LastDownload:    f.num("last_download"),
		TimesDownloaded: f.num("times_downloaded"),
		Status:          f.str("status"),
		Deleted:         f.flag("deleted"),
		Encrypted:       f.flag("encrypted"),
		IV:              f.str("e2e_iv"),
		MD5:             f.str("md5"),
	}
	owner := f.ref("owner")
	if f.failed() {
		return Incomplete[domain.File](f.Err()), nil
	}

	u, err := h.User(ctx, owner)
	if err != nil {
		return Attempt[domain.File]{}, err
	}
	file.Owner = u
	return Complete(file), nil
}
