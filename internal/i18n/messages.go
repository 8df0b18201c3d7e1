package i18n

var messages = map[string]map[string]string{
	LocaleID: {
		// 通用
		"error.bad_request":            "Permintaan tidak valid",
		"error.id_invalid":             "ID tidak valid",
		"error.unauthorized":           "Silakan login terlebih dahulu",
		"error.forbidden":              "Anda tidak memiliki akses",
		"error.rate_limited":           "Terlalu banyak permintaan, coba lagi dalam %d detik",
		"error.rate_limit_unavailable": "Layanan pembatasan permintaan tidak tersedia",
		"error.login_too_many":         "Terlalu banyak percobaan login, coba lagi dalam %d detik",

		// 鉴权
		"error.auth_header_missing": "Header Authorization tidak ditemukan",
		"error.auth_header_invalid": "Format header Authorization tidak valid",
		"error.jwt_secret_missing":  "Kunci JWT belum dikonfigurasi",
		"error.token_invalid":       "Token tidak valid atau sudah kedaluwarsa",
		"error.token_revoked":       "Token sudah dicabut, silakan login kembali",
		"error.user_disabled":       "Akun dinonaktifkan",

		// 用户
		"error.register_failed":            "Registrasi gagal",
		"error.email_invalid":              "Format email tidak valid",
		"error.email_exists":               "Email sudah terdaftar",
		"error.username_invalid":           "Username tidak valid",
		"error.username_exists":            "Username sudah digunakan",
		"error.password_weak":              "Kata sandi tidak memenuhi kebijakan keamanan",
		"error.password_min_length":        "Kata sandi minimal %d karakter",
		"error.password_require_upper":     "Kata sandi harus mengandung huruf besar",
		"error.password_require_lower":     "Kata sandi harus mengandung huruf kecil",
		"error.password_require_number":    "Kata sandi harus mengandung angka",
		"error.password_require_special":   "Kata sandi harus mengandung karakter khusus",
		"error.login_invalid":              "Email atau kata sandi salah",
		"error.login_failed":               "Login gagal",
		"error.email_not_verified":         "Email belum diverifikasi",
		"error.email_already_verified":     "Email sudah diverifikasi",
		"error.verification_token_invalid": "Token verifikasi tidak valid atau sudah kedaluwarsa",
		"error.verify_email_failed":        "Verifikasi email gagal",
		"error.send_verification_failed":   "Gagal mengirim email verifikasi",
		"error.forgot_password_failed":     "Permintaan reset kata sandi gagal",
		"error.reset_token_invalid":        "Token reset tidak valid atau sudah kedaluwarsa",
		"error.reset_failed":               "Reset kata sandi gagal",
		"error.user_not_found":             "Pengguna tidak ditemukan",
		"error.user_id_invalid":            "ID pengguna tidak valid",
		"error.user_fetch_failed":          "Gagal mengambil data pengguna",
		"error.login_log_fetch_failed":     "Gagal mengambil log login",
		"error.authz_audit_fetch_failed":   "Gagal mengambil log audit izin",
		"error.user_update_failed":         "Gagal memperbarui pengguna",
		"error.user_status_invalid":        "Status pengguna tidak valid",
		"message.register_success":         "Registrasi berhasil, silakan cek email untuk verifikasi",
		"message.email_verified":           "Email berhasil diverifikasi",
		"message.verification_sent":        "Email verifikasi telah dikirim",
		"message.password_reset_requested": "Jika email terdaftar, tautan reset kata sandi telah dikirim",
		"message.password_reset":           "Kata sandi berhasil diubah",
		"message.created":                  "Berhasil dibuat",

		// 目录
		"error.category_not_found":           "Kategori tidak ditemukan",
		"error.category_name_exists":         "Nama kategori sudah ada",
		"error.category_in_use":              "Kategori masih digunakan oleh kursus",
		"error.category_fetch_failed":        "Gagal mengambil kategori",
		"error.category_save_failed":         "Gagal menyimpan kategori",
		"error.category_delete_failed":       "Gagal menghapus kategori",
		"error.course_not_found":             "Kursus tidak ditemukan",
		"error.course_in_use":                "Kursus masih digunakan oleh jadwal",
		"error.course_fetch_failed":          "Gagal mengambil kursus",
		"error.course_save_failed":           "Gagal menyimpan kursus",
		"error.course_delete_failed":         "Gagal menghapus kursus",
		"error.schedule_not_found":           "Jadwal tidak ditemukan",
		"error.schedule_date_invalid":        "Tanggal jadwal harus berformat YYYY-MM-DD",
		"error.schedule_date_exists":         "Jadwal pada tanggal tersebut sudah ada",
		"error.schedule_in_use":              "Jadwal masih digunakan oleh kursus",
		"error.schedule_fetch_failed":        "Gagal mengambil jadwal",
		"error.schedule_save_failed":         "Gagal menyimpan jadwal",
		"error.schedule_delete_failed":       "Gagal menghapus jadwal",
		"error.offering_not_found":           "Penawaran kursus tidak ditemukan",
		"error.offering_exists":              "Kursus sudah terdaftar pada jadwal ini",
		"error.offering_in_use":              "Penawaran kursus masih digunakan",
		"error.offering_fetch_failed":        "Gagal mengambil penawaran kursus",
		"error.offering_save_failed":         "Gagal menyimpan penawaran kursus",
		"error.offering_delete_failed":       "Gagal menghapus penawaran kursus",
		"error.payment_method_not_found":     "Metode pembayaran tidak ditemukan",
		"error.payment_method_inactive":      "Metode pembayaran tidak aktif",
		"error.payment_method_in_use":        "Metode pembayaran masih digunakan oleh invoice",
		"error.payment_method_fetch_failed":  "Gagal mengambil metode pembayaran",
		"error.payment_method_save_failed":   "Gagal menyimpan metode pembayaran",
		"error.payment_method_delete_failed": "Gagal menghapus metode pembayaran",

		// 购物车与结算
		"error.cart_fetch_failed":            "Gagal mengambil keranjang",
		"error.cart_update_failed":           "Gagal memperbarui keranjang",
		"error.cart_line_not_found":          "Item keranjang tidak ditemukan",
		"error.cart_line_duplicate":          "Kursus pada jadwal ini sudah ada di keranjang",
		"error.cart_line_changed":            "Keranjang berubah saat checkout, silakan coba lagi",
		"error.settlement_selection_empty":   "Pilih minimal satu item keranjang",
		"error.settlement_no_matching_items": "Tidak ada item keranjang yang cocok dengan pilihan",
		"error.settlement_failed":            "Checkout gagal",
		"error.invoice_number_conflict":      "Nomor invoice bentrok, silakan coba lagi",
		"error.invoice_not_found":            "Invoice tidak ditemukan",
		"error.invoice_fetch_failed":         "Gagal mengambil invoice",
		"error.invoice_update_failed":        "Gagal memperbarui invoice",
		"error.invoice_delete_failed":        "Gagal menghapus invoice",
		"message.cart_line_added":            "Item berhasil ditambahkan ke keranjang",
		"message.invoice_created":            "Invoice berhasil dibuat",

		// 权限
		"error.role_invalid":       "Peran tidak valid",
		"error.role_immutable":     "Peran bawaan tidak dapat dihapus",
		"error.authz_fetch_failed": "Gagal mengambil data hak akses",

		// 参数校验
		"validation.required":      "%s wajib diisi",
		"validation.email":         "%s harus berupa email yang valid",
		"validation.max":           "%s terlalu panjang",
		"validation.min":           "%s terlalu pendek",
		"validation.schedule_date": "%s harus berformat YYYY-MM-DD",
		"validation.ids_unique":    "%s tidak boleh berisi ID kosong atau duplikat",

		// 邮件
		"email.verification.subject":          "Verifikasi email D'Language",
		"email.verification.body":             "Halo %s,\n\nSilakan verifikasi email Anda melalui tautan berikut:\n%s\n\nTautan berlaku selama 24 jam.",
		"email.password_reset.subject":        "Reset kata sandi D'Language",
		"email.password_reset.body":           "Halo %s,\n\nGunakan tautan berikut untuk mengatur ulang kata sandi:\n%s\n\nAbaikan email ini jika Anda tidak memintanya.",
		"email.invoice_receipt.subject":       "Invoice %s",
		"email.invoice_receipt.line":          "%d. %s (%s) Rp %s",
		"email.invoice_receipt.body":          "Nomor invoice: %s\nMetode pembayaran: %s\nStatus: %s\n\n%s\n\nTotal: Rp %s",
		"email.invoice_receipt.status_paid":   "Lunas",
		"email.invoice_receipt.status_unpaid": "Belum dibayar",
	},
	LocaleEN: {
		"error.bad_request":            "Invalid request",
		"error.id_invalid":             "Invalid ID",
		"error.unauthorized":           "Please log in first",
		"error.forbidden":              "You do not have access",
		"error.rate_limited":           "Too many requests, try again in %d seconds",
		"error.rate_limit_unavailable": "Rate limiting is unavailable",
		"error.login_too_many":         "Too many login attempts, try again in %d seconds",

		"error.auth_header_missing": "Authorization header is missing",
		"error.auth_header_invalid": "Invalid Authorization header format",
		"error.jwt_secret_missing":  "JWT secret is not configured",
		"error.token_invalid":       "Token is invalid or expired",
		"error.token_revoked":       "Token has been revoked, please log in again",
		"error.user_disabled":       "Account is disabled",

		"error.register_failed":            "Registration failed",
		"error.email_invalid":              "Invalid email format",
		"error.email_exists":               "Email is already registered",
		"error.username_invalid":           "Invalid username",
		"error.username_exists":            "Username is already taken",
		"error.password_weak":              "Password does not meet the security policy",
		"error.password_min_length":        "Password must be at least %d characters",
		"error.password_require_upper":     "Password must contain an uppercase letter",
		"error.password_require_lower":     "Password must contain a lowercase letter",
		"error.password_require_number":    "Password must contain a number",
		"error.password_require_special":   "Password must contain a special character",
		"error.login_invalid":              "Invalid email or password",
		"error.login_failed":               "Login failed",
		"error.email_not_verified":         "Email is not verified",
		"error.email_already_verified":     "Email is already verified",
		"error.verification_token_invalid": "Verification token is invalid or expired",
		"error.verify_email_failed":        "Email verification failed",
		"error.send_verification_failed":   "Failed to send verification email",
		"error.forgot_password_failed":     "Password reset request failed",
		"error.reset_token_invalid":        "Reset token is invalid or expired",
		"error.reset_failed":               "Password reset failed",
		"error.user_not_found":             "User not found",
		"error.user_id_invalid":            "Invalid user ID",
		"error.user_fetch_failed":          "Failed to fetch user",
		"error.login_log_fetch_failed":     "Failed to fetch login logs",
		"error.authz_audit_fetch_failed":   "Failed to fetch authorization audit logs",
		"error.user_update_failed":         "Failed to update user",
		"error.user_status_invalid":        "Invalid user status",
		"message.register_success":         "Registration successful, please check your email to verify",
		"message.email_verified":           "Email verified",
		"message.verification_sent":        "Verification email sent",
		"message.password_reset_requested": "If the email is registered, a reset link has been sent",
		"message.password_reset":           "Password has been reset",
		"message.created":                  "Created",

		"error.category_not_found":           "Category not found",
		"error.category_name_exists":         "Category name already exists",
		"error.category_in_use":              "Category is still used by courses",
		"error.category_fetch_failed":        "Failed to fetch category",
		"error.category_save_failed":         "Failed to save category",
		"error.category_delete_failed":       "Failed to delete category",
		"error.course_not_found":             "Course not found",
		"error.course_in_use":                "Course is still scheduled",
		"error.course_fetch_failed":          "Failed to fetch course",
		"error.course_save_failed":           "Failed to save course",
		"error.course_delete_failed":         "Failed to delete course",
		"error.schedule_not_found":           "Schedule not found",
		"error.schedule_date_invalid":        "Schedule date must use the YYYY-MM-DD format",
		"error.schedule_date_exists":         "A schedule already exists on that date",
		"error.schedule_in_use":              "Schedule still has courses",
		"error.schedule_fetch_failed":        "Failed to fetch schedule",
		"error.schedule_save_failed":         "Failed to save schedule",
		"error.schedule_delete_failed":       "Failed to delete schedule",
		"error.offering_not_found":           "Offering not found",
		"error.offering_exists":              "Course is already offered on this schedule",
		"error.offering_in_use":              "Offering is still in use",
		"error.offering_fetch_failed":        "Failed to fetch offering",
		"error.offering_save_failed":         "Failed to save offering",
		"error.offering_delete_failed":       "Failed to delete offering",
		"error.payment_method_not_found":     "Payment method not found",
		"error.payment_method_inactive":      "Payment method is inactive",
		"error.payment_method_in_use":        "Payment method is still used by invoices",
		"error.payment_method_fetch_failed":  "Failed to fetch payment method",
		"error.payment_method_save_failed":   "Failed to save payment method",
		"error.payment_method_delete_failed": "Failed to delete payment method",

		"error.cart_fetch_failed":            "Failed to fetch cart",
		"error.cart_update_failed":           "Failed to update cart",
		"error.cart_line_not_found":          "Cart item not found",
		"error.cart_line_duplicate":          "This course and schedule is already in the cart",
		"error.cart_line_changed":            "Cart changed during checkout, please try again",
		"error.settlement_selection_empty":   "Select at least one cart item",
		"error.settlement_no_matching_items": "No cart items match the selection",
		"error.settlement_failed":            "Checkout failed",
		"error.invoice_number_conflict":      "Invoice number conflict, please try again",
		"error.invoice_not_found":            "Invoice not found",
		"error.invoice_fetch_failed":         "Failed to fetch invoice",
		"error.invoice_update_failed":        "Failed to update invoice",
		"error.invoice_delete_failed":        "Failed to delete invoice",
		"message.cart_line_added":            "Item added to cart",
		"message.invoice_created":            "Invoice created",

		"error.role_invalid":       "Invalid role",
		"error.role_immutable":     "Built-in roles cannot be deleted",
		"error.authz_fetch_failed": "Failed to fetch permissions",

		"validation.required":      "%s is required",
		"validation.email":         "%s must be a valid email",
		"validation.max":           "%s is too long",
		"validation.min":           "%s is too short",
		"validation.schedule_date": "%s must use the YYYY-MM-DD format",
		"validation.ids_unique":    "%s must not contain empty or duplicate IDs",

		"email.verification.subject":          "Verify your D'Language email",
		"email.verification.body":             "Hi %s,\n\nPlease verify your email using the link below:\n%s\n\nThe link is valid for 24 hours.",
		"email.password_reset.subject":        "Reset your D'Language password",
		"email.password_reset.body":           "Hi %s,\n\nUse the link below to reset your password:\n%s\n\nIgnore this email if you did not request it.",
		"email.invoice_receipt.subject":       "Invoice %s",
		"email.invoice_receipt.line":          "%d. %s (%s) Rp %s",
		"email.invoice_receipt.body":          "Invoice number: %s\nPayment method: %s\nStatus: %s\n\n%s\n\nTotal: Rp %s",
		"email.invoice_receipt.status_paid":   "Paid",
		"email.invoice_receipt.status_unpaid": "Unpaid",
	},
}
